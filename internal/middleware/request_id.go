package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request ID generation
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// RequestIDMiddleware reuses the caller's X-Request-ID or generates one, and echoes it back
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader) // Check for existing header
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)       // Store in context for handlers and logs
		c.Header(RequestIDHeader, id) // Echo to the client
		c.Next()                      // Proceed to the next handler
	}
}
