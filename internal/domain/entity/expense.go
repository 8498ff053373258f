package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// MaxExpenseDescriptionLength is the longest description accepted, in characters.
const MaxExpenseDescriptionLength = 255

// Expense is a single amount spent against a budget.
type Expense struct {
	ID          valueobject.ExpenseID
	BudgetID    valueobject.BudgetID
	OwnerUserID string
	Description string
	Amount      decimal.Decimal
	SpentAt     time.Time
	CreatedAt   time.Time
}

// NewExpense validates the amount and description and creates an expense.
// The per-expense cap is checked against the budget by the caller.
func NewExpense(budget *Budget, description string, amount decimal.Decimal, spentAt, now time.Time) (*Expense, error) {
	if !amount.IsPositive() || !IsMoneyScale(amount) || !IsStorableMoney(amount) {
		return nil, domainerror.NewExpenseValidationError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount",
			"amount must be positive with at most 2 decimal places, at most "+MaxMoney.String(),
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > MaxExpenseDescriptionLength {
		return nil, domainerror.NewExpenseValidationError(
			domainerror.ErrCodeInvalidExpenseDescription,
			"description",
			"description must be at most 255 characters",
			domainerror.ErrInvalidExpenseDescription,
		)
	}

	now = now.UTC()
	if spentAt.IsZero() {
		spentAt = now
	}

	return &Expense{
		ID:          valueobject.GenerateExpenseID(),
		BudgetID:    budget.ID,
		OwnerUserID: budget.OwnerUserID,
		Description: description,
		Amount:      amount,
		SpentAt:     spentAt.UTC(),
		CreatedAt:   now,
	}, nil
}
