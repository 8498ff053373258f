package budget

import (
	"context"
	"fmt"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// DeleteBudgetByID removes a budget the caller owns together with its
// expenses. Deleting a missing or foreign budget is a no-op.
func (s *Service) DeleteBudgetByID(ctx context.Context, id, callerUserID string) error {
	var deleted *entity.Budget
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		budget, found, err := s.lockOwned(ctx, id, callerUserID)
		if err != nil || !found {
			return err
		}

		if err := s.expenseRepo.DeleteByBudget(ctx, budget.ID); err != nil {
			return fmt.Errorf("failed to delete budget expenses: %w", err)
		}

		removed, err := s.budgetRepo.DeleteOwned(ctx, budget.ID, callerUserID)
		if err != nil {
			return fmt.Errorf("failed to delete budget: %w", err)
		}
		if removed {
			deleted = budget
		}
		return nil
	})
	if err != nil {
		return err
	}

	if deleted != nil {
		s.publish(ctx, entity.NewBudgetEvent(entity.BudgetEventDeleted, deleted, s.clock.Now()))
	}
	return nil
}
