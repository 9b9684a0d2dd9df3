package domain

import (
	"time" // Creation timestamp

	"github.com/shopspring/decimal" // Exact decimal balances
)

// Account Model
type Account struct {
	ID            uint            `gorm:"primaryKey"`                            // Primary key
	UserID        uint            `gorm:"index;not null"`                        // Foreign key to User
	AccountName   string          `gorm:"size:255"`                              // Free text name
	AccountType   string          `gorm:"size:50"`                               // Uppercased account type
	AccountNumber string          `gorm:"size:10;uniqueIndex;not null"`          // Unique 10-digit number
	Balance       decimal.Decimal `gorm:"type:decimal(19,2);not null;default:0"` // Account balance
	Pin           *string         `gorm:"size:60"`                               // Hashed PIN, nil for legacy accounts
	CreatedAt     time.Time       `gorm:"autoCreateTime"`                        // Timestamp of creation
}

// AccountView is the public projection of an Account, never carrying the PIN digest
type AccountView struct {
	ID            uint             `json:"id"`                // Account ID
	AccountName   string           `json:"accountName"`       // Account name
	AccountType   string           `json:"accountType"`       // Account type
	AccountNumber string           `json:"accountNumber"`     // Account number
	CreatedAt     time.Time        `json:"createdAt"`         // Creation timestamp
	Balance       *decimal.Decimal `json:"balance,omitempty"` // Balance, only disclosed at creation
}

// View projects the account without its balance, as used by listings
func (a Account) View() AccountView {
	return AccountView{
		ID:            a.ID,
		AccountName:   a.AccountName,
		AccountType:   a.AccountType,
		AccountNumber: a.AccountNumber,
		CreatedAt:     a.CreatedAt,
	}
}

// ViewWithBalance projects the account including its balance
func (a Account) ViewWithBalance() AccountView {
	v := a.View()
	balance := a.Balance
	v.Balance = &balance
	return v
}
