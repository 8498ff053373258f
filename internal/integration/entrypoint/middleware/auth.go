// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/dto"
)

const principalKey = "auth.principal"

// AuthMiddleware turns a bearer access token into the principal every budget
// operation further down the chain runs as.
type AuthMiddleware struct {
	tokens adapter.TokenIssuer
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokens adapter.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid access token with 401.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		principal, err := m.tokens.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domainerror.ErrMissingToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", domainerror.ErrInvalidToken
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", domainerror.ErrMissingToken
	}
	return token, nil
}

func abortUnauthorized(c *gin.Context, err error) {
	authErr := domainerror.AuthFailure(err)
	if authErr == nil {
		authErr = domainerror.AuthFailure(domainerror.ErrInvalidToken)
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: authErr.Message,
		Code:  string(authErr.Code),
	})
}

// Principal returns the authenticated caller, if any.
func Principal(c *gin.Context) (*adapter.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*adapter.Principal)
	return p, ok && p != nil
}

// CallerID returns the authenticated user id in the string form budgets
// store as their owner.
func CallerID(c *gin.Context) (string, bool) {
	p, ok := Principal(c)
	if !ok || p.UserID == uuid.Nil {
		return "", false
	}
	return p.UserID.String(), true
}
