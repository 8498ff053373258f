// Package valueobject contains domain value objects for the budget tracker.
package valueobject

import (
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

// BudgetID identifies a budget. Comparison is case-sensitive and the raw
// token is never normalised.
type BudgetID struct {
	value string
}

// NewBudgetID wraps a raw identifier token.
func NewBudgetID(raw string) (BudgetID, error) {
	if raw == "" {
		return BudgetID{}, domainerror.ErrInvalidBudgetID
	}
	return BudgetID{value: raw}, nil
}

// BudgetIDOf is the named factory for BudgetID. It shares NewBudgetID's
// validation so both construction paths always agree.
func BudgetIDOf(raw string) (BudgetID, error) {
	return NewBudgetID(raw)
}

// GenerateBudgetID returns a fresh random identifier.
func GenerateBudgetID() BudgetID {
	return BudgetID{value: uuid.NewString()}
}

// String returns the raw token.
func (id BudgetID) String() string {
	return id.value
}

// IsZero reports whether the id was never set.
func (id BudgetID) IsZero() bool {
	return id.value == ""
}

// ExpenseID identifies an expense recorded against a budget.
type ExpenseID struct {
	value string
}

// NewExpenseID wraps a raw identifier token.
func NewExpenseID(raw string) (ExpenseID, error) {
	if raw == "" {
		return ExpenseID{}, domainerror.ErrInvalidExpenseID
	}
	return ExpenseID{value: raw}, nil
}

// ExpenseIDOf delegates to NewExpenseID.
func ExpenseIDOf(raw string) (ExpenseID, error) {
	return NewExpenseID(raw)
}

// GenerateExpenseID returns a fresh random identifier.
func GenerateExpenseID() ExpenseID {
	return ExpenseID{value: uuid.NewString()}
}

// String returns the raw token.
func (id ExpenseID) String() string {
	return id.value
}

// IsZero reports whether the id was never set.
func (id ExpenseID) IsZero() bool {
	return id.value == ""
}
