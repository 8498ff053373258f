package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// RecordExpenseRequest represents the request body for recording an expense.
type RecordExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description"`
	SpentAt     *time.Time       `json:"spentAt"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ExpenseID   string    `json:"expenseId"`
	BudgetID    string    `json:"budgetId"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	SpentAt     time.Time `json:"spentAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecordExpenseResponse represents the response of recording an expense.
type RecordExpenseResponse struct {
	Expense       ExpenseResponse      `json:"expense"`
	Status        BudgetStatusResponse `json:"status"`
	LimitExceeded bool                 `json:"limitExceeded"`
}

// ExpenseListResponse represents the expenses of a budget.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ID.String(),
		BudgetID:    e.BudgetID.String(),
		Description: e.Description,
		Amount:      money(e.Amount),
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseListResponse converts domain expenses to an ExpenseListResponse DTO.
func ToExpenseListResponse(expenses []*entity.Expense) ExpenseListResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{Expenses: out}
}
