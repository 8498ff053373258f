// Package email queues budget alerts and delivers them in the background.
package email

import (
	"context"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
)

// Notifier writes alert emails to the outbox. Delivery happens later in a
// Worker, so a slow provider never holds up the request that tripped the alert.
type Notifier struct {
	outbox adapter.AlertOutbox
	clock  adapter.Clock
}

func NewNotifier(outbox adapter.AlertOutbox, clock adapter.Clock) *Notifier {
	return &Notifier{outbox: outbox, clock: clock}
}

// NotifyLimitExceeded queues the over-limit email for owner.
func (n *Notifier) NotifyLimitExceeded(ctx context.Context, owner *entity.User, alert entity.BudgetAlert) error {
	email := entity.NewLimitExceededEmail(owner, alert, n.clock.Now())
	if err := n.outbox.Enqueue(ctx, email); err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, err)
	}
	return nil
}

var _ adapter.AlertNotifier = (*Notifier)(nil)
