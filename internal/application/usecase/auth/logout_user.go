package auth

import (
	"context"
	"log/slog"
)

// Logout revokes refreshToken. It never fails from the client's point of
// view; a token that cannot be revoked is only logged.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		slog.Warn("Failed to revoke refresh token", "error", err)
	}
}
