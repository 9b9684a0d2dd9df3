package api

import (
	"bank_backend/internal/domain"  // Importing domain models
	"bank_backend/internal/service" // Business services
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username"` // Blank credentials fail like wrong ones
	Password string `json:"password"` // Plaintext password
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Message string `json:"message"` // Confirmation message
	UserID  uint   `json:"userId"`  // Authenticated user ID
}

// RegisterHandler creates a new user
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, domain.NewValidationError("Username, email and password are required"))
			return
		}
		// Hand over to the service for uniqueness checks and hashing
		if _, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Username: req.Username, // Requested username
			Email:    req.Email,    // Requested email
			Password: req.Password, // Plaintext password, hashed by the service
		}); err != nil {
			respondError(c, err)
			return
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Registration successful!"})
	}
}

// LoginHandler checks a username and password and returns the user's ID
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Only malformed JSON is a bad request
			respondError(c, domain.NewValidationError("Invalid request"))
			return
		}
		userID, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err) // Unknown user and wrong password share one 401
			return
		}
		c.JSON(http.StatusOK, LoginResponse{Message: "Login successful!", UserID: userID})
	}
}
