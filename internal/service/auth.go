package service

import (
	"bank_backend/internal/domain" // Importing domain models
	"bank_backend/internal/utils"  // Utility functions
	"context"                      // Request scoped context
	"errors"                       // Error inspection
	"strings"                      // String manipulation

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Messages returned to clients; login failures share one message whatever the cause
const (
	msgInvalidLogin     = "Invalid username or password"
	msgUsernameTaken    = "Username already exists"
	msgEmailTaken       = "Email already registered"
	msgDuplicateAccount = "Username or email already exists"
)

// RegisterInput holds the fields of a registration request
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService registers users and checks their credentials
type AuthService struct {
	db          *gorm.DB      // Database handle
	hasher      *utils.Hasher // Password hasher
	dummyDigest string        // Compared against when the username is unknown
}

// NewAuthService builds an AuthService over db
func NewAuthService(db *gorm.DB, hasher *utils.Hasher) *AuthService {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		logrus.WithError(err).Warn("Failed to prepare dummy digest")
	}
	return &AuthService{db: db, hasher: hasher, dummyDigest: dummy}
}

// Register creates a user after checking that username and email are unused
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	// Stored exactly as given so Login matches the same bytes; blank values are rejected
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.NewValidationError("Username, email and password are required")
	}

	// Hash outside the transaction so the bcrypt cost does not hold a connection
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if utils.IsSecretTooLong(err) {
			return nil, domain.NewValidationError("Password must be at most 72 bytes")
		}
		return nil, domain.NewStoreError("Failed to hash password", err)
	}

	user := domain.User{Username: in.Username, Email: in.Email, Password: hash}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := recordExists(tx, &domain.User{}, "username = ?", in.Username)
		if err != nil {
			return err
		}
		if taken {
			return domain.NewConflictError(msgUsernameTaken)
		}
		taken, err = recordExists(tx, &domain.User{}, "email = ?", in.Email)
		if err != nil {
			return err
		}
		if taken {
			return domain.NewConflictError(msgEmailTaken)
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		var appErr *domain.AppError
		switch {
		case errors.As(err, &appErr):
			return nil, appErr
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Lost a race with a concurrent registration
			return nil, domain.NewConflictError(msgDuplicateAccount)
		default:
			return nil, domain.NewStoreError("Failed to register user", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,       // User ID
		"username": user.Username, // Username
	}).Info("User registered")
	return &user, nil
}

// Login returns the user's ID when password matches the stored digest
func (s *AuthService) Login(ctx context.Context, username, password string) (uint, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Spend the same bcrypt work as a real comparison
		s.hasher.Verify(password, s.dummyDigest)
		logrus.WithField("username", username).Warn("Login failed")
		return 0, domain.NewAuthError(msgInvalidLogin)
	}
	if err != nil {
		return 0, domain.NewStoreError("Failed to load user", err)
	}
	if !s.hasher.Verify(password, user.Password) {
		logrus.WithField("username", username).Warn("Login failed")
		return 0, domain.NewAuthError(msgInvalidLogin)
	}
	return user.ID, nil
}

// recordExists reports whether any row of model matches the condition
func recordExists(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
