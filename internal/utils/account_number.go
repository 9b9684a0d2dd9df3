package utils

import (
	"context"     // Context for store lookups
	"crypto/rand" // Uniform random source
	"errors"      // Sentinel errors
	"fmt"         // Formatting and wrapping
	"math/big"    // Range for crypto/rand.Int
)

// AccountNumberLength is the number of digits in every account number
const AccountNumberLength = 10

// DefaultAccountNumberAttempts bounds the generate-and-check loop when no cap is configured
const DefaultAccountNumberAttempts = 200

// ErrAccountNumberExhausted is returned when every attempt collided with an existing number
var ErrAccountNumberExhausted = errors.New("no free account number found")

// accountNumberSpace is 10^10, the count of distinct 10-digit strings
var accountNumberSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(AccountNumberLength), nil)

// AccountNumberChecker reports whether an account number is already taken
type AccountNumberChecker interface {
	AccountNumberExists(ctx context.Context, number string) (bool, error)
}

// AccountNumberCheckerFunc adapts a function to AccountNumberChecker
type AccountNumberCheckerFunc func(ctx context.Context, number string) (bool, error)

// AccountNumberExists calls f
func (f AccountNumberCheckerFunc) AccountNumberExists(ctx context.Context, number string) (bool, error) {
	return f(ctx, number)
}

// AccountNumberAllocator draws random account numbers until one is free
type AccountNumberAllocator struct {
	maxAttempts int                    // Cap on generated candidates
	next        func() (string, error) // Candidate source, swapped in tests
}

// NewAccountNumberAllocator returns an allocator trying at most maxAttempts candidates
func NewAccountNumberAllocator(maxAttempts int) *AccountNumberAllocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultAccountNumberAttempts
	}
	return &AccountNumberAllocator{maxAttempts: maxAttempts, next: RandomAccountNumber}
}

// WithSource returns a copy of the allocator drawing candidates from next
func (a *AccountNumberAllocator) WithSource(next func() (string, error)) *AccountNumberAllocator {
	cp := *a
	cp.next = next
	return &cp
}

// Allocate returns a number the checker reports as unused
func (a *AccountNumberAllocator) Allocate(ctx context.Context, checker AccountNumberChecker) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate, err := a.next()
		if err != nil {
			return "", fmt.Errorf("generate account number: %w", err)
		}
		taken, err := checker.AccountNumberExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check account number: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrAccountNumberExhausted, a.maxAttempts)
}

// RandomAccountNumber returns a left-zero-padded number drawn uniformly from [0, 10^10)
func RandomAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", AccountNumberLength, n.Int64()), nil
}
