package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/integration/persistence/model"
)

type alertOutbox struct {
	db *gorm.DB
}

// NewAlertOutbox returns the email_queue backed adapter.AlertOutbox.
func NewAlertOutbox(db *gorm.DB) adapter.AlertOutbox {
	return &alertOutbox{db: db}
}

func (o *alertOutbox) Enqueue(ctx context.Context, email *entity.AlertEmail) error {
	if err := conn(ctx, o.db).Create(model.AlertEmailModelFromEntity(email)).Error; err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, err)
	}
	return nil
}

func (o *alertOutbox) Due(ctx context.Context, now time.Time, limit int) ([]*entity.AlertEmail, error) {
	var rows []model.AlertEmailModel
	err := conn(ctx, o.db).
		Where("status = ? AND scheduled_at <= ?", entity.DeliveryPending, now.UTC()).
		Order("scheduled_at, created_at").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toAlertEmails(rows), nil
}

func (o *alertOutbox) Claim(ctx context.Context, id uuid.UUID) (bool, error) {
	res := conn(ctx, o.db).
		Model(&model.AlertEmailModel{}).
		Where("id = ? AND status = ?", id, entity.DeliveryPending).
		Update("status", entity.DeliverySending)
	return res.RowsAffected == 1, res.Error
}

func (o *alertOutbox) Save(ctx context.Context, email *entity.AlertEmail) error {
	return conn(ctx, o.db).Save(model.AlertEmailModelFromEntity(email)).Error
}

func (o *alertOutbox) Get(ctx context.Context, id uuid.UUID) (*entity.AlertEmail, error) {
	var row model.AlertEmailModel
	err := conn(ctx, o.db).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrAlertEmailNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

func (o *alertOutbox) ForRecipient(ctx context.Context, address string) ([]*entity.AlertEmail, error) {
	var rows []model.AlertEmailModel
	if err := conn(ctx, o.db).Where("recipient_email = ?", address).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAlertEmails(rows), nil
}

func (o *alertOutbox) PurgeDelivered(ctx context.Context, cutoff time.Time) (int64, error) {
	res := conn(ctx, o.db).
		Where("status = ? AND processed_at < ?", entity.DeliverySent, cutoff.UTC()).
		Delete(&model.AlertEmailModel{})
	return res.RowsAffected, res.Error
}

func toAlertEmails(rows []model.AlertEmailModel) []*entity.AlertEmail {
	emails := make([]*entity.AlertEmail, len(rows))
	for i := range rows {
		emails[i] = rows[i].ToEntity()
	}
	return emails
}
