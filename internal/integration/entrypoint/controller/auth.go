// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/dto"
)

// AuthController serves account registration and the session endpoints.
type AuthController struct {
	service *auth.Service
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	session, err := c.service.Register(ctx.Request.Context(), auth.Registration{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, sessionResponse(session))
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	session, err := c.service.Login(ctx.Request.Context(), auth.LoginAttempt{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sessionResponse(session))
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, string(domainerror.ErrCodeMissingToken), err)
		return
	}

	session, err := c.service.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tokenResponse(session.Credentials))
}

// Logout handles POST /auth/logout requests. It always succeeds, even for a
// malformed body.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err == nil {
		c.service.Logout(ctx.Request.Context(), req.RefreshToken)
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
}

func tokenResponse(creds adapter.Credentials) dto.TokenResponse {
	return dto.TokenResponse{
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
		ExpiresAt:    creds.AccessExpiresAt,
	}
}

func sessionResponse(session *auth.Session) dto.AuthResponse {
	return dto.AuthResponse{
		TokenResponse: tokenResponse(session.Credentials),
		User:          dto.ToUserResponse(session.User),
	}
}
