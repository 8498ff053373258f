package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/middleware"
)

// statusForCode maps the category digits of a domain error code
// (PREFIX-XXYYYY) to an HTTP status.
func statusForCode(code string) int {
	_, rest, found := strings.Cut(code, "-")
	if !found || len(rest) < 2 {
		return http.StatusInternalServerError
	}
	switch rest[:2] {
	case "01", "03":
		return http.StatusBadRequest
	case "02":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(message, code, field string) dto.ErrorResponse {
	resp := dto.ErrorResponse{Error: message, Code: code}
	if field != "" {
		resp.Details = map[string]string{field: message}
	}
	return resp
}

// authStatus maps an AUTH code to its HTTP status. Registration failures are
// client errors, everything else means the caller is not who they claim.
func authStatus(code domainerror.AuthErrorCode) int {
	switch {
	case code == domainerror.ErrCodeUnableToRegister:
		return http.StatusConflict
	case code == domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case code.Registration():
		return http.StatusBadRequest
	default:
		return http.StatusUnauthorized
	}
}

// handleDomainError writes the response for an error returned by an
// application service.
func handleDomainError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(authStatus(authErr.Code), errorResponse(authErr.Message, string(authErr.Code), ""))
		return
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		code := string(budgetErr.Code)
		ctx.JSON(statusForCode(code), errorResponse(budgetErr.Message, code, budgetErr.Field))
		return
	}

	var expenseErr *domainerror.ExpenseError
	if errors.As(err, &expenseErr) {
		code := string(expenseErr.Code)
		ctx.JSON(statusForCode(code), errorResponse(expenseErr.Message, code, expenseErr.Field))
		return
	}

	handleInternalError(ctx, err)
}

func handleInternalError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	slog.Error("Request failed",
		"error", err,
		"request_id", requestid.Get(ctx),
		"route", ctx.FullPath(),
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

func handleBindingError(ctx *gin.Context, code string, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    code,
		Details: dto.BindingErrorDetails(err),
	})
}

// requireCaller returns the authenticated user id or writes a 401.
func requireCaller(ctx *gin.Context) (string, bool) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return "", false
	}
	return callerID, true
}
