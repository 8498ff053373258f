package budget

import (
	"context"
	"fmt"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// GetBudgetStatus recomputes how much of the budget has been spent in its
// current period. Nothing is cached between calls.
func (s *Service) GetBudgetStatus(ctx context.Context, id, callerUserID string) (*entity.BudgetStatus, error) {
	budget, found, err := s.loadOwned(ctx, id, callerUserID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound()
	}

	now := s.clock.Now()
	period := entity.CurrentPeriod(budget.TypeOfBudget, now)

	spent, count, err := s.expenseRepo.SumInPeriod(ctx, budget.ID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return entity.ComputeBudgetStatus(budget, spent, count, period, now), nil
}
