package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
)

// AlertEmailModel is one row of the email_queue outbox. The alert snapshot
// lives in template_data as JSON.
type AlertEmailModel struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Template      string             `gorm:"column:template_type;type:varchar(50);not null"`
	To            string             `gorm:"column:recipient_email;type:varchar(255);not null;index"`
	ToName        string             `gorm:"column:recipient_name;type:varchar(255)"`
	Subject       string             `gorm:"type:varchar(500);not null"`
	Alert         entity.BudgetAlert `gorm:"column:template_data;type:text;not null;serializer:json"`
	Status        string             `gorm:"type:varchar(20);not null;index:idx_email_queue_due,priority:1"`
	Attempts      int                `gorm:"not null;default:0"`
	MaxAttempts   int                `gorm:"not null;default:3"`
	LastError     string             `gorm:"type:text"`
	ProviderID    string             `gorm:"type:varchar(100)"`
	CreatedAt     time.Time          `gorm:"not null"`
	NextAttemptAt time.Time          `gorm:"column:scheduled_at;not null;index:idx_email_queue_due,priority:2"`
	FinishedAt    *time.Time         `gorm:"column:processed_at"`
}

func (AlertEmailModel) TableName() string {
	return "email_queue"
}

func (m *AlertEmailModel) ToEntity() *entity.AlertEmail {
	return &entity.AlertEmail{
		ID:            m.ID,
		Template:      m.Template,
		To:            m.To,
		ToName:        m.ToName,
		Subject:       m.Subject,
		Alert:         m.Alert,
		Status:        entity.DeliveryStatus(m.Status),
		Attempts:      m.Attempts,
		MaxAttempts:   m.MaxAttempts,
		LastError:     m.LastError,
		ProviderID:    m.ProviderID,
		CreatedAt:     m.CreatedAt,
		NextAttemptAt: m.NextAttemptAt,
		FinishedAt:    m.FinishedAt,
	}
}

func AlertEmailModelFromEntity(e *entity.AlertEmail) *AlertEmailModel {
	return &AlertEmailModel{
		ID:            e.ID,
		Template:      e.Template,
		To:            e.To,
		ToName:        e.ToName,
		Subject:       e.Subject,
		Alert:         e.Alert,
		Status:        string(e.Status),
		Attempts:      e.Attempts,
		MaxAttempts:   e.MaxAttempts,
		LastError:     e.LastError,
		ProviderID:    e.ProviderID,
		CreatedAt:     e.CreatedAt,
		NextAttemptAt: e.NextAttemptAt,
		FinishedAt:    e.FinishedAt,
	}
}
