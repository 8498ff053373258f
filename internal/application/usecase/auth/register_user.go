package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

// Registration is the data a new account is created from.
type Registration struct {
	Email    string
	Name     string
	Password string
}

// Register creates an account with budget alerts enabled and signs it in.
func (s *Service) Register(ctx context.Context, in Registration) (*Session, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, domainerror.AuthFailure(err)
	}
	if err := s.passwords.CheckPolicy(in.Password); err != nil {
		return nil, domainerror.AuthFailure(fmt.Errorf("%w: %v", domainerror.ErrWeakPassword, err))
	}

	switch _, err := s.users.GetByEmail(ctx, email); {
	case err == nil:
		return nil, domainerror.AuthFailure(domainerror.ErrUnableToRegister)
	case !errors.Is(err, domainerror.ErrUserNotFound):
		return nil, fmt.Errorf("look up %q: %w", email, err)
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entity.NewUser(email, strings.TrimSpace(in.Name), hash)
	user.CreatedAt = s.clock.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	if err := s.users.Insert(ctx, user); err != nil {
		// A concurrent registration can still win the unique index.
		if authErr := domainerror.AuthFailure(err); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	creds, err := s.tokens.Issue(ctx, user, false)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return newSession(creds, user), nil
}

// normalizeEmail lower-cases and trims raw and rejects anything that is not
// a bare address with a dotted domain.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return "", domainerror.ErrInvalidEmail
	}
	at := strings.LastIndexByte(email, '@')
	if domain := email[at+1:]; !strings.Contains(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", domainerror.ErrInvalidEmail
	}
	return email, nil
}
