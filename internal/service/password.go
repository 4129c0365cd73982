package service

import (
	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 12

// PasswordHasher turns plaintext passwords into stored hashes and back-checks them.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hash. An empty hash is compared
	// against a fixed dummy hash and always fails.
	Verify(plain, hash string) bool
}

type bcryptHasher struct {
	cost  int
	dummy []byte
}

// NewBcryptHasher falls back to DefaultBcryptCost when cost is outside bcrypt's range.
func NewBcryptHasher(cost int) (PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("mcq-platform:unknown-account"), cost)
	if err != nil {
		return nil, err
	}
	return &bcryptHasher{cost: cost, dummy: dummy}, nil
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *bcryptHasher) Verify(plain, hash string) bool {
	if hash == "" {
		// Same amount of work as a real comparison.
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
