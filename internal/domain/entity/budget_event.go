package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetEventType names a change in a budget's lifecycle.
type BudgetEventType string

const (
	BudgetEventRegistered    BudgetEventType = "budget.registered"
	BudgetEventUpdated       BudgetEventType = "budget.updated"
	BudgetEventDeleted       BudgetEventType = "budget.deleted"
	BudgetEventLimitExceeded BudgetEventType = "budget.limit_exceeded"
)

// BudgetEvent is published after a budget changes.
type BudgetEvent struct {
	Type         BudgetEventType
	BudgetID     string
	OwnerUserID  string
	Title        string
	TypeOfBudget TypeOfBudget
	Limit        decimal.Decimal
	Spent        *decimal.Decimal
	OccurredAt   time.Time
}

// NewBudgetEvent builds an event from the budget's current state.
func NewBudgetEvent(eventType BudgetEventType, b *Budget, now time.Time) BudgetEvent {
	return BudgetEvent{
		Type:         eventType,
		BudgetID:     b.ID.String(),
		OwnerUserID:  b.OwnerUserID,
		Title:        b.Title,
		TypeOfBudget: b.TypeOfBudget,
		Limit:        b.Limit,
		OccurredAt:   now.UTC(),
	}
}
