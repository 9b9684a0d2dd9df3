package service

import (
	"bank_backend/internal/domain" // Importing domain models
	"bank_backend/internal/utils"  // Utility functions
	"context"                      // Request scoped context
	"errors"                       // Error inspection
	"regexp"                       // PIN format
	"strings"                      // String manipulation
	"time"                         // Cache TTL

	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact decimal balances
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// maxInsertAttempts bounds how often an insert is retried after losing an account number race
const maxInsertAttempts = 3

const (
	msgAccountNotFound = "Account not found"
	msgUserNotFound    = "User not found"
	msgInvalidPin      = "Invalid PIN for this account"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// CreateAccountInput holds the fields of an account creation request
type CreateAccountInput struct {
	AccountName    string
	AccountType    string
	InitialBalance decimal.Decimal
	Pin            string
}

// AccountService manages bank accounts and their PIN protected balances
type AccountService struct {
	db        *gorm.DB                      // Database handle
	hasher    *utils.Hasher                 // PIN hasher
	allocator *utils.AccountNumberAllocator // Account number source
	rdb       *redis.Client                 // Optional listing cache
	cacheTTL  time.Duration                 // Listing cache lifetime
}

// NewAccountService builds an AccountService. rdb may be nil to disable caching.
func NewAccountService(db *gorm.DB, hasher *utils.Hasher, allocator *utils.AccountNumberAllocator, rdb *redis.Client, cacheTTL time.Duration) *AccountService {
	return &AccountService{db: db, hasher: hasher, allocator: allocator, rdb: rdb, cacheTTL: cacheTTL}
}

// ListForUser returns the public views of every account owned by userID, oldest first
func (s *AccountService) ListForUser(ctx context.Context, userID uint) ([]domain.AccountView, error) {
	cacheKey := utils.AccountListKey(userID)
	var cached []domain.AccountView
	found, err := utils.GetCache(ctx, s.rdb, cacheKey, &cached)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Account cache read failed")
	}
	if err == nil && found {
		return cached, nil
	}

	// Read the version before the rows so a write landing in between is detected
	versionKey := utils.AccountListVersionKey(userID)
	version, versionErr := utils.GetVersion(ctx, s.rdb, versionKey)

	var accounts []domain.Account
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&accounts).Error; err != nil {
		return nil, domain.NewStoreError("Error fetching accounts", err)
	}
	views := make([]domain.AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, a.View())
	}

	if versionErr != nil {
		return views, nil
	}
	if _, err := utils.SetCacheIfVersion(ctx, s.rdb, cacheKey, views, s.cacheTTL, versionKey, version); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Account cache write failed")
	}
	return views, nil
}

// Create opens a new account for userID with a freshly allocated account number
func (s *AccountService) Create(ctx context.Context, userID uint, in CreateAccountInput) (*domain.AccountView, error) {
	name := strings.TrimSpace(in.AccountName)
	accountType := strings.ToUpper(strings.TrimSpace(in.AccountType))
	switch {
	case name == "":
		return nil, domain.NewValidationError("Account name is required")
	case accountType == "":
		return nil, domain.NewValidationError("Account type is required")
	case in.InitialBalance.IsNegative():
		return nil, domain.NewValidationError("Initial balance cannot be negative")
	case !pinPattern.MatchString(in.Pin):
		return nil, domain.NewValidationError("A valid 4-digit PIN is required")
	}

	pinHash, err := s.hasher.Hash(in.Pin)
	if err != nil {
		return nil, domain.NewStoreError("Failed to hash PIN", err)
	}

	var account domain.Account
	for attempt := 1; ; attempt++ {
		account = domain.Account{
			UserID:      userID,
			AccountName: name,
			AccountType: accountType,
			Balance:     in.InitialBalance.Round(2),
			Pin:         &pinHash,
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var user domain.User
			if err := tx.Select("id").First(&user, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.NewNotFoundError(msgUserNotFound)
				}
				return err
			}
			number, err := s.allocator.Allocate(ctx, accountNumberChecker(tx))
			if err != nil {
				return domain.NewStoreError("Failed to allocate account number", err)
			}
			account.AccountNumber = number
			return tx.Create(&account).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt == maxInsertAttempts {
			break
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,  // User ID
			"attempt": attempt, // Insert attempt
		}).Warn("Account number taken concurrently, retrying")
	}
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // User ID
			"error":   err.Error(), // Error message
		}).Error("Failed to create account")
		return nil, domain.NewStoreError("Error creating account", err)
	}

	s.invalidateListing(ctx, userID)
	logrus.WithFields(logrus.Fields{
		"user_id":        userID,                // User ID
		"account_id":     account.ID,            // Account ID
		"account_number": account.AccountNumber, // Account number
		"account_type":   account.AccountType,   // Account type
	}).Info("Account created")
	view := account.ViewWithBalance()
	return &view, nil
}

// GetBalance discloses the balance of accountID when pin matches the account's PIN
func (s *AccountService) GetBalance(ctx context.Context, accountID uint, pin string) (decimal.Decimal, error) {
	account, err := s.find(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	if account.Pin == nil || !s.hasher.Verify(pin, *account.Pin) {
		logrus.WithField("account_id", accountID).Warn("Balance check with invalid PIN")
		return decimal.Zero, domain.NewAuthError(msgInvalidPin)
	}
	return account.Balance, nil
}

// Delete removes accountID. Ownership is not checked.
func (s *AccountService) Delete(ctx context.Context, accountID uint) error {
	account, err := s.find(ctx, accountID)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&domain.Account{}, accountID)
	if res.Error != nil {
		return domain.NewStoreError("Error deleting account", res.Error)
	}
	if res.RowsAffected == 0 {
		// Removed by a concurrent request
		return domain.NewNotFoundError(msgAccountNotFound)
	}

	s.invalidateListing(ctx, account.UserID)
	logrus.WithFields(logrus.Fields{
		"user_id":    account.UserID, // User ID
		"account_id": accountID,      // Account ID
	}).Info("Account deleted")
	return nil
}

// find loads an account or reports it missing
func (s *AccountService) find(ctx context.Context, accountID uint) (*domain.Account, error) {
	var account domain.Account
	err := s.db.WithContext(ctx).First(&account, accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewNotFoundError(msgAccountNotFound)
	}
	if err != nil {
		return nil, domain.NewStoreError("Error loading account", err)
	}
	return &account, nil
}

// invalidateListing drops the cached listing of userID and bumps its version
// so listings loaded before the write are not cached afterwards
func (s *AccountService) invalidateListing(ctx context.Context, userID uint) {
	if err := utils.BumpVersion(ctx, s.rdb, utils.AccountListVersionKey(userID)); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Account cache version bump failed")
	}
	if err := utils.DeleteCache(ctx, s.rdb, utils.AccountListKey(userID)); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Account cache invalidation failed")
	}
}

// accountNumberChecker looks numbers up through tx so the check shares the insert's transaction
func accountNumberChecker(tx *gorm.DB) utils.AccountNumberChecker {
	return utils.AccountNumberCheckerFunc(func(_ context.Context, number string) (bool, error) {
		return recordExists(tx, &domain.Account{}, "account_number = ?", number)
	})
}
