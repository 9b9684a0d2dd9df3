package api

import (
	"bank_backend/internal/service" // Business services
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RegisterRoutes mounts the public auth and account endpoints on r
func RegisterRoutes(r gin.IRouter, auth *service.AuthService, accounts *service.AccountService) {
	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", RegisterHandler(auth)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(auth))       // Login endpoint

	// Account routes, reachable without a session
	accountGroup := r.Group("/api/accounts")
	accountGroup.GET("/user/:userId", ListAccountsHandler(accounts))     // List accounts endpoint
	accountGroup.POST("/create/:userId", CreateAccountHandler(accounts)) // Create account endpoint
	accountGroup.POST("/:accountId/balance", BalanceHandler(accounts))   // Balance endpoint
	accountGroup.DELETE("/:accountId", DeleteAccountHandler(accounts))   // Delete account endpoint
}

// HealthHandler reports whether the database answers
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
