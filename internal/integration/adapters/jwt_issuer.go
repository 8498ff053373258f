package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/integration/persistence"
)

// Default lifetimes; a "remember me" login gets the extended pair.
const (
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 7 * 24 * time.Hour

	rememberedAccessTokenDuration  = 7 * 24 * time.Hour
	rememberedRefreshTokenDuration = 30 * 24 * time.Hour
)

const tokenIssuer = "budget-api"

type tokenKind string

const (
	kindAccess  tokenKind = "access"
	kindRefresh tokenKind = "refresh"
)

// budgetClaims is the JWT payload of both token kinds.
type budgetClaims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	TokenType tokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenDurations configures how long issued tokens stay valid. Zero values
// fall back to the defaults.
type TokenDurations struct {
	Access  time.Duration
	Refresh time.Duration
}

func (d TokenDurations) forLogin(rememberMe bool) TokenDurations {
	if rememberMe {
		return TokenDurations{Access: rememberedAccessTokenDuration, Refresh: rememberedRefreshTokenDuration}
	}
	return d
}

type jwtIssuer struct {
	secret    []byte
	durations TokenDurations
	store     persistence.RefreshTokenStore
	clock     adapter.Clock
	parser    *jwt.Parser
}

// NewJWTIssuer returns an HS256 adapter.TokenIssuer whose refresh tokens are
// tracked in store.
func NewJWTIssuer(secret string, durations TokenDurations, store persistence.RefreshTokenStore, clock adapter.Clock) adapter.TokenIssuer {
	if durations.Access <= 0 {
		durations.Access = DefaultAccessTokenDuration
	}
	if durations.Refresh <= 0 {
		durations.Refresh = DefaultRefreshTokenDuration
	}
	return &jwtIssuer{
		secret:    []byte(secret),
		durations: durations,
		store:     store,
		clock:     clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

func (i *jwtIssuer) Issue(ctx context.Context, user *entity.User, rememberMe bool) (*adapter.Credentials, error) {
	now := i.clock.Now().UTC()
	ttl := i.durations.forLogin(rememberMe)

	access, err := i.sign(user, kindAccess, now, ttl.Access)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := i.sign(user, kindRefresh, now, ttl.Refresh)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := i.store.Store(ctx, refresh, user.ID, now, now.Add(ttl.Refresh)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &adapter.Credentials{
		AccessToken:     access,
		RefreshToken:    refresh,
		AccessExpiresAt: now.Add(ttl.Access),
	}, nil
}

func (i *jwtIssuer) Authenticate(_ context.Context, accessToken string) (*adapter.Principal, error) {
	return i.verify(accessToken, kindAccess)
}

func (i *jwtIssuer) Redeem(ctx context.Context, refreshToken string) (*adapter.Principal, error) {
	principal, err := i.verify(refreshToken, kindRefresh)
	if err != nil {
		return nil, err
	}

	spent, err := i.store.Consume(ctx, refreshToken, i.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	if !spent {
		return nil, fmt.Errorf("refresh token already used or revoked: %w", domainerror.ErrInvalidToken)
	}
	return principal, nil
}

func (i *jwtIssuer) Revoke(ctx context.Context, refreshToken string) error {
	return i.store.Revoke(ctx, refreshToken)
}

func (i *jwtIssuer) sign(user *entity.User, kind tokenKind, now time.Time, ttl time.Duration) (string, error) {
	subject := user.ID.String()
	claims := budgetClaims{
		UserID:    subject,
		Email:     user.Email,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti keeps two tokens minted in the same second distinct.
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *jwtIssuer) verify(raw string, want tokenKind) (*adapter.Principal, error) {
	var claims budgetClaims
	_, err := i.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		return nil, errors.Join(domainerror.ErrInvalidToken, err)
	}
	if claims.TokenType != want {
		return nil, fmt.Errorf("got %s token, want %s: %w", claims.TokenType, want, domainerror.ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("bad user_id claim: %w", domainerror.ErrInvalidToken)
	}

	return &adapter.Principal{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
