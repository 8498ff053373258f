package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

func TestStatusForCode(t *testing.T) {
	tests := map[string]int{
		"BUD-010001": http.StatusBadRequest,
		"EXP-010003": http.StatusBadRequest,
		"BUD-020001": http.StatusNotFound,
		"BUD-030004": http.StatusBadRequest,
		"EML-040001": http.StatusInternalServerError,
		"garbage":    http.StatusInternalServerError,
		"BUD-":       http.StatusInternalServerError,
	}

	for code, want := range tests {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, want, statusForCode(code))
		})
	}
}

func TestAuthStatus(t *testing.T) {
	tests := map[domainerror.AuthErrorCode]int{
		domainerror.ErrCodeUnableToRegister:   http.StatusConflict,
		domainerror.ErrCodeWeakPassword:       http.StatusBadRequest,
		domainerror.ErrCodeMissingFields:      http.StatusBadRequest,
		domainerror.ErrCodeInvalidCredentials: http.StatusUnauthorized,
		domainerror.ErrCodeRateLimited:        http.StatusTooManyRequests,
		domainerror.ErrCodeInvalidToken:       http.StatusUnauthorized,
	}

	for code, want := range tests {
		t.Run(string(code), func(t *testing.T) {
			assert.Equal(t, want, authStatus(code))
		})
	}
}
