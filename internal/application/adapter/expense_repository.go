package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create inserts a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// ListByBudget returns every expense of a budget, newest first.
	ListByBudget(ctx context.Context, budgetID valueobject.BudgetID) ([]*entity.Expense, error)

	// SumInPeriod returns the total amount and number of expenses whose
	// spent_at falls inside period.
	SumInPeriod(ctx context.Context, budgetID valueobject.BudgetID, period entity.Period) (decimal.Decimal, int64, error)

	// DeleteOwned removes one expense of a budget owned by ownerUserID.
	// It reports whether a row was removed.
	DeleteOwned(ctx context.Context, budgetID valueobject.BudgetID, expenseID valueobject.ExpenseID, ownerUserID string) (bool, error)

	// DeleteByBudget removes every expense of a budget.
	DeleteByBudget(ctx context.Context, budgetID valueobject.BudgetID) error
}
