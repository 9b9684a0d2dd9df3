package middleware

import (
	"time" // Latency measurement

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// LoggerMiddleware writes one structured access log line per request
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next() // Process request

		status := c.Writer.Status()
		entry := logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),  // Request ID
			"method":     c.Request.Method,           // HTTP method
			"path":       path,                       // Request path
			"status":     status,                     // Response status
			"latency":    time.Since(start).String(), // Handling time
			"client_ip":  c.ClientIP(),               // Client address
		})
		switch {
		case status >= 500:
			entry.Error("Request handled")
		case status >= 400:
			entry.Warn("Request handled")
		default:
			entry.Info("Request handled")
		}
	}
}
