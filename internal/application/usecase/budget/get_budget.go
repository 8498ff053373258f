package budget

import (
	"context"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// GetBudgetByID returns the budget when it exists and callerUserID owns it.
func (s *Service) GetBudgetByID(ctx context.Context, id, callerUserID string) (*entity.Budget, bool, error) {
	return s.loadOwned(ctx, id, callerUserID)
}
