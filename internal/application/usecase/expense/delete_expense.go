package expense

import (
	"context"
	"fmt"

	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// DeleteExpense removes one expense of a budget the caller owns. Missing
// budgets and expenses are ignored.
func (s *Service) DeleteExpense(ctx context.Context, budgetID, expenseID, callerUserID string) error {
	bid, err := valueobject.NewBudgetID(budgetID)
	if err != nil {
		return nil
	}
	eid, err := valueobject.NewExpenseID(expenseID)
	if err != nil {
		return nil
	}

	if _, err := s.expenseRepo.DeleteOwned(ctx, bid, eid, callerUserID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}
