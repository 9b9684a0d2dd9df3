package middleware

import (
	"time" // Preflight cache duration

	"github.com/gin-contrib/cors" // CORS middleware for Gin
	"github.com/gin-gonic/gin"    // Gin web framework
)

// CORSMiddleware allows cross-origin calls from origins. A "*" entry admits any origin and
// echoes it back so credentialed requests keep working.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},                   // Allowed methods
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}, // Allowed headers
		ExposeHeaders:    []string{RequestIDHeader},                                                      // Headers visible to scripts
		AllowCredentials: true,                                                                           // Cookies and auth headers allowed
		MaxAge:           12 * time.Hour,                                                                 // Preflight cache
	}
	if allowsAnyOrigin(origins) {
		cfg.AllowOriginFunc = func(string) bool { return true } // Echo any origin
	} else {
		cfg.AllowOrigins = origins // Restrict to configured origins
	}
	return cors.New(cfg)
}

// allowsAnyOrigin reports whether origins contains the wildcard
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}
