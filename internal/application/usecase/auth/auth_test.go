package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/integration/adapters"
	"github.com/finance-tracker/budget-api/internal/integration/persistence"
	"github.com/finance-tracker/budget-api/internal/testutil"
)

var now = time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)

type fixture struct {
	service *auth.Service
	tokens  adapter.TokenIssuer
	clock   *testutil.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	clock := testutil.NewClock(now)
	tokens := adapters.NewJWTIssuer("test-secret", adapters.TokenDurations{}, persistence.NewRefreshTokenStore(db), clock)

	return &fixture{
		service: auth.NewService(
			persistence.NewUserRepository(db),
			adapters.NewBcryptHasher(bcrypt.MinCost),
			tokens,
			clock,
		),
		tokens: tokens,
		clock:  clock,
	}
}

func (f *fixture) register(t *testing.T, email string) *auth.Session {
	t.Helper()
	session, err := f.service.Register(context.Background(), auth.Registration{
		Email:    email,
		Name:     "Ana",
		Password: "password123",
	})
	require.NoError(t, err)
	return session
}

func authCode(t *testing.T, err error) domainerror.AuthErrorCode {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	return authErr.Code
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	session, err := f.service.Register(context.Background(), auth.Registration{
		Email:    "  Ana@Example.com ",
		Name:     " Ana ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.Equal(t, "Ana", session.User.Name)
	assert.True(t, session.User.BudgetAlerts)
	assert.Equal(t, now, session.User.CreatedAt)
	assert.NotEqual(t, "password123", session.User.PasswordHash)

	principal, err := f.tokens.Authenticate(context.Background(), session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, principal.UserID)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   auth.Registration
		code domainerror.AuthErrorCode
	}{
		{name: "not an email", in: auth.Registration{Email: "not-an-email", Password: "password123"}, code: domainerror.ErrCodeInvalidEmail},
		{name: "display name", in: auth.Registration{Email: "Ana <ana@example.com>", Password: "password123"}, code: domainerror.ErrCodeInvalidEmail},
		{name: "no tld", in: auth.Registration{Email: "ana@localhost", Password: "password123"}, code: domainerror.ErrCodeInvalidEmail},
		{name: "short password", in: auth.Registration{Email: "ana@example.com", Password: "short"}, code: domainerror.ErrCodeWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Register(context.Background(), tt.in)
			assert.Equal(t, tt.code, authCode(t, err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com")

	_, err := f.service.Register(context.Background(), auth.Registration{
		Email:    "ANA@example.com",
		Name:     "Ana again",
		Password: "password123",
	})
	assert.Equal(t, domainerror.ErrCodeUnableToRegister, authCode(t, err))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "ana@example.com")

	session, err := f.service.Login(ctx, auth.LoginAttempt{Email: "ANA@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "ana@example.com", session.User.Email)

	_, err = f.service.Login(ctx, auth.LoginAttempt{Email: "ana@example.com", Password: "wrong-password"})
	assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err))

	_, err = f.service.Login(ctx, auth.LoginAttempt{Email: "nobody@example.com", Password: "password123"})
	assert.Equal(t, domainerror.ErrCodeInvalidCredentials, authCode(t, err), "unknown accounts look like bad passwords")
}

func TestLoginRememberMe(t *testing.T) {
	f := newFixture(t)
	f.register(t, "ana@example.com")

	session, err := f.service.Login(context.Background(), auth.LoginAttempt{
		Email:      "ana@example.com",
		Password:   "password123",
		RememberMe: true,
	})
	require.NoError(t, err)
	assert.True(t, session.AccessExpiresAt.After(now.Add(adapters.DefaultAccessTokenDuration)))
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered := f.register(t, "ana@example.com")

	refreshed, err := f.service.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)
	assert.Nil(t, refreshed.User)

	_, err = f.service.Refresh(ctx, registered.RefreshToken)
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err), "a used refresh token is spent")

	_, err = f.service.Refresh(ctx, registered.AccessToken)
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))

	_, err = f.service.Refresh(ctx, refreshed.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshAfterExpiry(t *testing.T) {
	f := newFixture(t)
	registered := f.register(t, "ana@example.com")

	f.clock.Advance(adapters.DefaultRefreshTokenDuration + time.Hour)

	_, err := f.service.Refresh(context.Background(), registered.RefreshToken)
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered := f.register(t, "ana@example.com")

	f.service.Logout(ctx, registered.RefreshToken)

	_, err := f.service.Refresh(ctx, registered.RefreshToken)
	assert.Equal(t, domainerror.ErrCodeInvalidToken, authCode(t, err))

	assert.NotPanics(t, func() {
		f.service.Logout(ctx, "garbage")
		f.service.Logout(ctx, "")
	})
}
