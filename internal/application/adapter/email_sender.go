package adapter

import (
	"context"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// OutgoingEmail is a rendered message ready for the provider.
type OutgoingEmail struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// EmailSender hands rendered emails to a delivery provider. Failures that
// retrying cannot fix wrap domainerror.ErrDeliveryRejected.
type EmailSender interface {
	// Send returns the provider's message id.
	Send(ctx context.Context, email OutgoingEmail) (string, error)
}

// AlertNotifier queues the emails sent when a budget crosses its limit.
type AlertNotifier interface {
	NotifyLimitExceeded(ctx context.Context, owner *entity.User, alert entity.BudgetAlert) error
}
