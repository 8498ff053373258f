package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

// LoginAttempt identifies an existing account.
type LoginAttempt struct {
	Email      string
	Password   string
	RememberMe bool
}

// Login checks the credentials and opens a new session. Unknown emails and
// wrong passwords fail identically.
func (s *Service) Login(ctx context.Context, in LoginAttempt) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, domainerror.AuthFailure(domainerror.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if !s.passwords.Matches(user.PasswordHash, in.Password) {
		return nil, domainerror.AuthFailure(domainerror.ErrInvalidCredentials)
	}

	creds, err := s.tokens.Issue(ctx, user, in.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return newSession(creds, user), nil
}
