package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// loadOwned is the only read path for a single budget. A budget that does not
// exist and one owned by somebody else both come back as found=false.
func (s *Service) loadOwned(ctx context.Context, rawID, callerUserID string) (*entity.Budget, bool, error) {
	return s.fetchOwned(ctx, rawID, callerUserID, false)
}

// lockOwned is loadOwned holding a row lock for the rest of the transaction in ctx.
func (s *Service) lockOwned(ctx context.Context, rawID, callerUserID string) (*entity.Budget, bool, error) {
	return s.fetchOwned(ctx, rawID, callerUserID, true)
}

func (s *Service) fetchOwned(ctx context.Context, rawID, callerUserID string, lock bool) (*entity.Budget, bool, error) {
	id, err := valueobject.NewBudgetID(rawID)
	if err != nil || callerUserID == "" {
		return nil, false, nil
	}

	var budget *entity.Budget
	if lock {
		budget, err = s.budgetRepo.LockOwned(ctx, id, callerUserID)
	} else {
		budget, err = s.budgetRepo.FindOwned(ctx, id, callerUserID)
	}
	if errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load budget: %w", err)
	}

	// Re-checked here in addition to the repository's owner predicate.
	if !budget.IsOwnedBy(callerUserID) {
		return nil, false, nil
	}
	return budget, true, nil
}

func notFound() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}
