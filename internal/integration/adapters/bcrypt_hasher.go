package adapters

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
)

// DefaultBcryptCost is the work factor used outside of tests.
const DefaultBcryptCost = 12

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var (
	errPasswordTooShort = errors.New("password must be at least 8 characters long")
	errPasswordTooLong  = errors.New("password must be at most 72 bytes long")
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher using cost, clamped to bcrypt's valid range.
func NewBcryptHasher(cost int) adapter.PasswordHasher {
	cost = max(cost, bcrypt.MinCost)
	cost = min(cost, bcrypt.MaxCost)
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *bcryptHasher) Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func (h *bcryptHasher) CheckPolicy(plain string) error {
	switch {
	case len([]rune(plain)) < minPasswordLength:
		return errPasswordTooShort
	case len(plain) > maxPasswordBytes:
		return errPasswordTooLong
	}
	return nil
}
