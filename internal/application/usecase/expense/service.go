// Package expense contains use cases for spending recorded against budgets.
package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// Service records, lists and removes expenses of budgets owned by the caller.
type Service struct {
	budgetRepo   adapter.BudgetRepository
	expenseRepo  adapter.ExpenseRepository
	userRepo     adapter.UserRepository
	transactor   adapter.Transactor
	publisher    adapter.EventPublisher
	metrics      adapter.MetricsRecorder
	alerts       adapter.AlertNotifier
	clock        adapter.Clock
}

// NewService creates a new expense Service instance.
func NewService(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	transactor adapter.Transactor,
	publisher adapter.EventPublisher,
	metrics adapter.MetricsRecorder,
	alerts adapter.AlertNotifier,
	clock adapter.Clock,
) *Service {
	return &Service{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		userRepo:     userRepo,
		transactor:   transactor,
		publisher:    publisher,
		metrics:      metrics,
		alerts:       alerts,
		clock:        clock,
	}
}

func (s *Service) findOwnedBudget(ctx context.Context, rawID, callerUserID string, lock bool) (*entity.Budget, error) {
	id, err := valueobject.NewBudgetID(rawID)
	if err != nil || callerUserID == "" {
		return nil, budgetNotFound()
	}

	var budget *entity.Budget
	if lock {
		budget, err = s.budgetRepo.LockOwned(ctx, id, callerUserID)
	} else {
		budget, err = s.budgetRepo.FindOwned(ctx, id, callerUserID)
	}
	if errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, budgetNotFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if !budget.IsOwnedBy(callerUserID) {
		return nil, budgetNotFound()
	}
	return budget, nil
}

func budgetNotFound() error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}

func (s *Service) publish(ctx context.Context, event entity.BudgetEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish budget event",
			"error", err,
			"type", event.Type,
			"budget_id", event.BudgetID,
		)
	}
}
