package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryStatus is where an alert email is in the outbox.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "pending"
	DeliverySending DeliveryStatus = "sending"
	DeliverySent    DeliveryStatus = "sent"
	DeliveryFailed  DeliveryStatus = "failed"
)

// TemplateBudgetLimitExceeded is the only alert template.
const TemplateBudgetLimitExceeded = "budget_limit_exceeded"

const maxDeliveryAttempts = 3

// retryDelays[n] is the wait after the n-th failed attempt.
var retryDelays = [maxDeliveryAttempts]time.Duration{0, time.Minute, 5 * time.Minute}

// BudgetAlert is the snapshot of a budget at the moment it went over its limit.
type BudgetAlert struct {
	BudgetID     string          `json:"budget_id"`
	BudgetTitle  string          `json:"budget_title"`
	TypeOfBudget TypeOfBudget    `json:"type_of_budget"`
	Limit        decimal.Decimal `json:"limit"`
	Spent        decimal.Decimal `json:"spent"`
}

// Overspent is how far Spent is past Limit.
func (a BudgetAlert) Overspent() decimal.Decimal {
	return decimal.Max(a.Spent.Sub(a.Limit), decimal.Zero)
}

// AlertEmail is a budget alert waiting in, or done with, the delivery outbox.
type AlertEmail struct {
	ID            uuid.UUID
	Template      string
	To            string
	ToName        string
	Subject       string
	Alert         BudgetAlert
	Status        DeliveryStatus
	Attempts      int
	MaxAttempts   int
	LastError     string
	ProviderID    string
	CreatedAt     time.Time
	NextAttemptAt time.Time
	FinishedAt    *time.Time
}

// NewLimitExceededEmail addresses alert to owner, due immediately.
func NewLimitExceededEmail(owner *User, alert BudgetAlert, now time.Time) *AlertEmail {
	now = now.UTC()
	return &AlertEmail{
		ID:            uuid.New(),
		Template:      TemplateBudgetLimitExceeded,
		To:            owner.Email,
		ToName:        owner.Name,
		Subject:       fmt.Sprintf("Budget %q is over its limit", alert.BudgetTitle),
		Alert:         alert,
		Status:        DeliveryPending,
		MaxAttempts:   maxDeliveryAttempts,
		CreatedAt:     now,
		NextAttemptAt: now,
	}
}

// Delivered records a successful hand-off to the provider.
func (e *AlertEmail) Delivered(providerID string, now time.Time) {
	e.Status = DeliverySent
	e.ProviderID = providerID
	e.finish(now)
}

// AttemptFailed records a failed delivery. The email is rescheduled unless
// the failure is permanent or no attempts are left.
func (e *AlertEmail) AttemptFailed(err error, permanent bool, now time.Time) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || !e.CanRetry() {
		e.Status = DeliveryFailed
		e.finish(now)
		return
	}

	e.Status = DeliveryPending
	e.NextAttemptAt = now.UTC().Add(retryDelays[min(e.Attempts, len(retryDelays)-1)])
}

// CanRetry reports whether another delivery attempt is allowed.
func (e *AlertEmail) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

func (e *AlertEmail) finish(now time.Time) {
	t := now.UTC()
	e.FinishedAt = &t
}
