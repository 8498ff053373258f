package adapter

import (
	"context"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// EventPublisher delivers budget lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.BudgetEvent) error
}
