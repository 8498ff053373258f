package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFailure(t *testing.T) {
	tests := []struct {
		cause   error
		code    AuthErrorCode
		message string
	}{
		{cause: ErrUnableToRegister, code: ErrCodeUnableToRegister, message: "unable to register with this email"},
		{cause: fmt.Errorf("bcrypt: %w", ErrWeakPassword), code: ErrCodeWeakPassword, message: "password does not meet minimum requirements"},
		{cause: ErrUserNotFound, code: ErrCodeInvalidCredentials, message: "invalid email or password"},
		{cause: errors.Join(ErrInvalidToken, errors.New("token is expired")), code: ErrCodeInvalidToken, message: "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			authErr := AuthFailure(tt.cause)
			require.NotNil(t, authErr)
			assert.Equal(t, tt.code, authErr.Code)
			assert.Equal(t, tt.message, authErr.Message)
			assert.ErrorIs(t, authErr, tt.cause)
		})
	}

	assert.Nil(t, AuthFailure(errors.New("connection refused")))
}

func TestAuthErrorCodeRegistration(t *testing.T) {
	assert.True(t, ErrCodeWeakPassword.Registration())
	assert.True(t, ErrCodeUnableToRegister.Registration())
	assert.False(t, ErrCodeInvalidCredentials.Registration())
	assert.False(t, ErrCodeMissingToken.Registration())
}
