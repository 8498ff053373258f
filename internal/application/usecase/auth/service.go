// Package auth handles accounts and the sessions that identify budget owners.
package auth

import (
	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// Session is what a client receives after registering, logging in or refreshing.
type Session struct {
	adapter.Credentials
	// User is nil for refreshed sessions.
	User *entity.User
}

// Service registers accounts and issues, rotates and revokes their tokens.
type Service struct {
	users     adapter.UserRepository
	passwords adapter.PasswordHasher
	tokens    adapter.TokenIssuer
	clock     adapter.Clock
}

// NewService creates a new auth Service instance.
func NewService(
	users adapter.UserRepository,
	passwords adapter.PasswordHasher,
	tokens adapter.TokenIssuer,
	clock adapter.Clock,
) *Service {
	return &Service{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		clock:     clock,
	}
}

func newSession(creds *adapter.Credentials, user *entity.User) *Session {
	return &Session{Credentials: *creds, User: user}
}
