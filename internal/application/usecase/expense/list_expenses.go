package expense

import (
	"context"
	"fmt"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// ListExpenses returns every expense of a budget the caller owns, newest first.
func (s *Service) ListExpenses(ctx context.Context, budgetID, callerUserID string) ([]*entity.Expense, error) {
	budget, err := s.findOwnedBudget(ctx, budgetID, callerUserID, false)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.ListByBudget(ctx, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []*entity.Expense{}
	}
	return expenses, nil
}
