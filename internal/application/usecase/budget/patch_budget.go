package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// PatchBudgetInput represents the input for a partial budget update. Absent
// fields are left untouched.
type PatchBudgetInput struct {
	ID               string
	Title            valueobject.Optional[string]
	Limit            valueobject.Optional[decimal.Decimal]
	TypeOfBudget     valueobject.Optional[entity.TypeOfBudget]
	MaxSingleExpense valueobject.Optional[decimal.Decimal]
	CallerUserID     string
	Timestamp        valueobject.Optional[time.Time]
}

var errPatchTargetMissing = errors.New("patch target missing")

// UpdateBudgetContent applies the present fields of input to a budget the
// caller owns. It reports found=false, without an error, when there is no
// such budget.
func (s *Service) UpdateBudgetContent(ctx context.Context, input PatchBudgetInput) (*entity.Budget, bool, error) {
	now := input.Timestamp.OrElse(s.clock.Now())

	var patched *entity.Budget
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		budget, found, err := s.lockOwned(ctx, input.ID, input.CallerUserID)
		if err != nil {
			return err
		}
		if !found {
			return errPatchTargetMissing
		}

		if err := budget.ApplyPatch(entity.BudgetPatch{
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
		patched = budget
		return nil
	})
	if errors.Is(err, errPatchTargetMissing) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	s.publish(ctx, entity.NewBudgetEvent(entity.BudgetEventUpdated, patched, patched.UpdatedAt))
	return patched, true, nil
}
