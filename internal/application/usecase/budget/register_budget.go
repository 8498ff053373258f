package budget

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// RegisterBudgetInput represents the input for budget registration.
type RegisterBudgetInput struct {
	Title            string
	Limit            decimal.Decimal
	TypeOfBudget     entity.TypeOfBudget
	MaxSingleExpense *decimal.Decimal // Optional, nil means no cap
	OwnerUserID      string
}

// RegisterNewBudget validates the input and persists a new budget owned by
// input.OwnerUserID under a freshly generated id.
func (s *Service) RegisterNewBudget(ctx context.Context, input RegisterBudgetInput) (*entity.Budget, error) {
	budget, err := entity.NewBudget(
		valueobject.GenerateBudgetID(),
		input.OwnerUserID,
		entity.BudgetFields{
			Title:            input.Title,
			Limit:            input.Limit,
			TypeOfBudget:     input.TypeOfBudget,
			MaxSingleExpense: input.MaxSingleExpense,
		},
		s.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.metrics.BudgetRegistered(budget.TypeOfBudget)
	s.publish(ctx, entity.NewBudgetEvent(entity.BudgetEventRegistered, budget, budget.CreatedAt))

	return budget, nil
}
