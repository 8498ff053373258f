package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// Credentials are the tokens handed to a client after it signs in.
type Credentials struct {
	AccessToken     string
	RefreshToken    string
	AccessExpiresAt time.Time
}

// Principal identifies the user a token was issued to.
type Principal struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenIssuer mints and checks the bearer tokens guarding the budget API.
type TokenIssuer interface {
	// Issue signs a new access/refresh pair for user and records the refresh token.
	Issue(ctx context.Context, user *entity.User, rememberMe bool) (*Credentials, error)

	// Authenticate resolves an access token to its principal.
	Authenticate(ctx context.Context, accessToken string) (*Principal, error)

	// Redeem spends a refresh token. A token can be redeemed once; revoked,
	// expired or unknown tokens are rejected.
	Redeem(ctx context.Context, refreshToken string) (*Principal, error)

	// Revoke makes a refresh token unusable. Unknown tokens are ignored.
	Revoke(ctx context.Context, refreshToken string) error
}
