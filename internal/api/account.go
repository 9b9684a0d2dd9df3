package api

import (
	"bank_backend/internal/domain"  // Importing domain models
	"bank_backend/internal/service" // Business services
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact decimal balances
)

// CreateAccountRequest represents an account creation request
type CreateAccountRequest struct {
	AccountName    string           `json:"accountName"`    // Display name
	AccountType    string           `json:"accountType"`    // Account type, uppercased on save
	InitialBalance *decimal.Decimal `json:"initialBalance"` // Opening balance
	Pin            string           `json:"pin"`            // 4-digit PIN
}

// PinRequest carries the PIN guarding a balance lookup
type PinRequest struct {
	Pin string `json:"pin"` // Account PIN
}

// ListAccountsHandler returns every account of the user in the path
func ListAccountsHandler(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseID(c, "userId", "user id")
		if err != nil {
			respondError(c, err)
			return
		}
		views, err := accounts.ListForUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, views) // Balances are not part of listings
	}
}

// CreateAccountHandler opens an account for the user in the path
func CreateAccountHandler(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseID(c, "userId", "user id")
		if err != nil {
			respondError(c, err)
			return
		}
		var req CreateAccountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.NewValidationError("Invalid request"))
			return
		}
		if req.InitialBalance == nil {
			respondError(c, domain.NewValidationError("Initial balance is required"))
			return
		}
		view, err := accounts.Create(c.Request.Context(), userID, service.CreateAccountInput{
			AccountName:    req.AccountName,     // Display name
			AccountType:    req.AccountType,     // Account type
			InitialBalance: *req.InitialBalance, // Opening balance
			Pin:            req.Pin,             // Plaintext PIN, hashed by the service
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account created successfully!", "account": view})
	}
}

// BalanceHandler discloses an account balance when the PIN matches
func BalanceHandler(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := parseID(c, "accountId", "account id")
		if err != nil {
			respondError(c, err)
			return
		}
		var req PinRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, domain.NewValidationError("Invalid request"))
			return
		}
		balance, err := accounts.GetBalance(c.Request.Context(), accountID, req.Pin)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"balance": balance})
	}
}

// DeleteAccountHandler removes the account in the path
func DeleteAccountHandler(accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, err := parseID(c, "accountId", "account id")
		if err != nil {
			respondError(c, err)
			return
		}
		if err := accounts.Delete(c.Request.Context(), accountID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully!"})
	}
}
