package controller

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/budget-api/internal/application/usecase/expense"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/integration/entrypoint/dto"
)

// ExpenseController handles the expense endpoints nested under a budget.
type ExpenseController struct {
	service *expense.Service
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(service *expense.Service) *ExpenseController {
	return &ExpenseController{
		service: service,
	}
}

// Record handles POST /budgets/:budgetId/expenses requests.
func (c *ExpenseController) Record(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.RecordExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		handleBindingError(ctx, string(domainerror.ErrCodeMissingExpenseFields), err)
		return
	}

	var spentAt time.Time
	if req.SpentAt != nil {
		spentAt = *req.SpentAt
	}

	output, err := c.service.RecordExpense(ctx.Request.Context(), expense.RecordExpenseInput{
		BudgetID:     ctx.Param("budgetId"),
		CallerUserID: callerID,
		Description:  req.Description,
		Amount:       *req.Amount,
		SpentAt:      spentAt,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Header("Location", budgetLocation(output.Expense.BudgetID)+"/expenses/"+url.PathEscape(output.Expense.ID.String()))
	ctx.JSON(http.StatusCreated, dto.RecordExpenseResponse{
		Expense:       dto.ToExpenseResponse(output.Expense),
		Status:        dto.ToBudgetStatusResponse(output.Status),
		LimitExceeded: output.LimitExceeded,
	})
}

// List handles GET /budgets/:budgetId/expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	expenses, err := c.service.ListExpenses(ctx.Request.Context(), ctx.Param("budgetId"), callerID)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(expenses))
}

// Delete handles DELETE /budgets/:budgetId/expenses/:expenseId requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	callerID, ok := requireCaller(ctx)
	if !ok {
		return
	}

	err := c.service.DeleteExpense(ctx.Request.Context(), ctx.Param("budgetId"), ctx.Param("expenseId"), callerID)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
