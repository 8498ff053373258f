package auth

import (
	"context"
	"errors"
	"fmt"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

// Refresh exchanges a refresh token for a new pair. The presented token is
// spent, so replaying it fails.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	principal, err := s.tokens.Redeem(ctx, refreshToken)
	if err != nil {
		if authErr := domainerror.AuthFailure(err); authErr != nil {
			return nil, authErr
		}
		return nil, fmt.Errorf("redeem refresh token: %w", err)
	}

	// The account may have been removed since the token was issued.
	user, err := s.users.Get(ctx, principal.UserID)
	if errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, domainerror.AuthFailure(domainerror.ErrInvalidToken)
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", principal.UserID, err)
	}

	creds, err := s.tokens.Issue(ctx, user, false)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return newSession(creds, nil), nil
}
