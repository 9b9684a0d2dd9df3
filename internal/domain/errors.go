package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the services
type ErrorKind int

const (
	KindStore      ErrorKind = iota // Persistence or infrastructure failure, also the fallback
	KindValidation                  // Bad input shape or range
	KindConflict                    // Uniqueness violation
	KindNotFound                    // No such user or account
	KindAuth                        // Credential or PIN mismatch
)

// String returns the kind name used in logs
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	default:
		return "store"
	}
}

// AppError carries a client-safe message and the underlying cause
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewValidationError reports rejected input
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewConflictError reports a uniqueness violation
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewNotFoundError reports a missing user or account
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// NewAuthError reports a failed password or PIN check
func NewAuthError(message string) *AppError {
	return &AppError{Kind: KindAuth, Message: message}
}

// NewStoreError wraps a persistence failure
func NewStoreError(message string, err error) *AppError {
	return &AppError{Kind: KindStore, Message: message, Err: err}
}

// KindOf returns the kind of err, treating anything unclassified as a store failure
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}

// MessageOf returns the client-safe message for err
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindStore {
		return appErr.Message
	}
	return "Internal server error"
}
