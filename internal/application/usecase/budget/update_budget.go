package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// UpdateBudgetInput represents the input for a full budget update.
type UpdateBudgetInput struct {
	ID               string
	Title            string
	Limit            decimal.Decimal
	TypeOfBudget     entity.TypeOfBudget
	MaxSingleExpense *decimal.Decimal // nil clears the cap
	CallerUserID     string
	Now              time.Time // Optional, defaults to the clock
}

// UpdateBudgetByID replaces every mutable attribute of a budget the caller owns.
func (s *Service) UpdateBudgetByID(ctx context.Context, input UpdateBudgetInput) (*entity.Budget, error) {
	now := input.Now
	if now.IsZero() {
		now = s.clock.Now()
	}

	var updated *entity.Budget
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		budget, found, err := s.lockOwned(ctx, input.ID, input.CallerUserID)
		if err != nil {
			return err
		}
		if !found {
			return notFound()
		}

		if err := budget.Replace(entity.BudgetFields{
			Title:            input.Title,
			Limit:            input.Limit,
			TypeOfBudget:     input.TypeOfBudget,
			MaxSingleExpense: input.MaxSingleExpense,
		}, now); err != nil {
			return err
		}

		if err := s.budgetRepo.UpdateOwned(ctx, budget); err != nil {
			return fmt.Errorf("failed to update budget: %w", err)
		}
		updated = budget
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, entity.NewBudgetEvent(entity.BudgetEventUpdated, updated, updated.UpdatedAt))
	return updated, nil
}
