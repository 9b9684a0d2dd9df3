package utils

import (
	"errors" // Error inspection

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Hasher produces and checks salted bcrypt digests for passwords and PINs
type Hasher struct {
	cost int // bcrypt cost factor
}

// NewHasher returns a Hasher, clamping cost into the range bcrypt accepts
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Cost reports the bcrypt cost in use
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns a digest for secret; equal secrets give different digests on every call
func (h *Hasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether secret matches digest. Empty or malformed digests never match.
func (h *Hasher) Verify(secret, digest string) bool {
	if digest == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret))
	return err == nil
}

// IsSecretTooLong reports whether err came from a secret past bcrypt's 72 byte limit
func IsSecretTooLong(err error) bool {
	return errors.Is(err, bcrypt.ErrPasswordTooLong)
}
