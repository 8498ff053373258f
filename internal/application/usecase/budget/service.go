// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// Service orchestrates the budget lifecycle. Every operation takes the
// caller's user id explicitly and only ever touches budgets the caller owns.
type Service struct {
	budgetRepo  adapter.BudgetRepository
	expenseRepo adapter.ExpenseRepository
	transactor  adapter.Transactor
	publisher   adapter.EventPublisher
	metrics     adapter.MetricsRecorder
	clock       adapter.Clock
}

// NewService creates a new budget Service instance.
func NewService(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	transactor adapter.Transactor,
	publisher adapter.EventPublisher,
	metrics adapter.MetricsRecorder,
	clock adapter.Clock,
) *Service {
	return &Service{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
		transactor:  transactor,
		publisher:   publisher,
		metrics:     metrics,
		clock:       clock,
	}
}

// publish delivers an event without failing the operation that produced it.
func (s *Service) publish(ctx context.Context, event entity.BudgetEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish budget event",
			"error", err,
			"type", event.Type,
			"budget_id", event.BudgetID,
		)
	}
}
