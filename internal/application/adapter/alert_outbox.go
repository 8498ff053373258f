package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// AlertOutbox stores alert emails until they are delivered.
type AlertOutbox interface {
	Enqueue(ctx context.Context, email *entity.AlertEmail) error

	// Due returns up to limit pending emails whose next attempt is at or
	// before now, oldest first.
	Due(ctx context.Context, now time.Time, limit int) ([]*entity.AlertEmail, error)

	// Claim moves a pending email to sending. It reports false when another
	// worker got there first.
	Claim(ctx context.Context, id uuid.UUID) (bool, error)

	// Save writes the delivery state of email.
	Save(ctx context.Context, email *entity.AlertEmail) error

	Get(ctx context.Context, id uuid.UUID) (*entity.AlertEmail, error)

	// ForRecipient lists the emails addressed to address, newest first.
	ForRecipient(ctx context.Context, address string) ([]*entity.AlertEmail, error)

	// PurgeDelivered deletes sent emails finished before cutoff.
	PurgeDelivered(ctx context.Context, cutoff time.Time) (int64, error)
}
