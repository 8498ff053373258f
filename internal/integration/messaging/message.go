// Package messaging publishes budget lifecycle events to RabbitMQ.
package messaging

import (
	"encoding/json"
	"time"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// BudgetEventMessage is the JSON body of a published budget event.
type BudgetEventMessage struct {
	Type         string    `json:"type"`
	BudgetID     string    `json:"budgetId"`
	OwnerUserID  string    `json:"ownerUserId"`
	Title        string    `json:"title"`
	TypeOfBudget string    `json:"typeOfBudget"`
	Limit        string    `json:"limit"`
	Spent        *string   `json:"spent,omitempty"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// NewBudgetEventMessage maps a domain event to its wire form. Amounts are
// fixed two-decimal strings.
func NewBudgetEventMessage(event entity.BudgetEvent) *BudgetEventMessage {
	msg := &BudgetEventMessage{
		Type:         string(event.Type),
		BudgetID:     event.BudgetID,
		OwnerUserID:  event.OwnerUserID,
		Title:        event.Title,
		TypeOfBudget: string(event.TypeOfBudget),
		Limit:        event.Limit.StringFixed(2),
		OccurredAt:   event.OccurredAt.UTC(),
	}
	if event.Spent != nil {
		spent := event.Spent.StringFixed(2)
		msg.Spent = &spent
	}
	return msg
}

// ToJSON converts the message to JSON bytes.
func (m *BudgetEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetEventMessageFromJSON creates a message from JSON bytes.
func BudgetEventMessageFromJSON(data []byte) (*BudgetEventMessage, error) {
	var msg BudgetEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
