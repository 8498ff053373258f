package adapter

import (
	"context"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// BudgetRepository defines the interface for budget persistence operations.
// Every lookup is scoped to the owning user; a budget owned by someone else
// is reported as domainerror.ErrBudgetNotFound.
type BudgetRepository interface {
	// Create inserts a new budget.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindOwned retrieves a budget by ID when owned by ownerUserID.
	FindOwned(ctx context.Context, id valueobject.BudgetID, ownerUserID string) (*entity.Budget, error)

	// LockOwned is FindOwned with a row lock held until the surrounding transaction ends.
	LockOwned(ctx context.Context, id valueobject.BudgetID, ownerUserID string) (*entity.Budget, error)

	// UpdateOwned saves the mutable attributes of a budget. Only the row whose
	// id and owner both match is written.
	UpdateOwned(ctx context.Context, budget *entity.Budget) error

	// DeleteOwned removes a budget owned by ownerUserID. It reports whether a
	// row was removed.
	DeleteOwned(ctx context.Context, id valueobject.BudgetID, ownerUserID string) (bool, error)

	// FindPageByOwner retrieves one page of ownerUserID's budgets ordered by
	// sortColumn, with ties broken by id, plus the total count.
	FindPageByOwner(ctx context.Context, ownerUserID string, page valueobject.PageRequest, sortColumn string) ([]*entity.Budget, int64, error)
}
