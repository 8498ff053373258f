package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/budget-api/internal/integration/persistence/model"
)

// RefreshTokenStore keeps track of issued refresh tokens so they can be spent
// once and revoked.
type RefreshTokenStore interface {
	Store(ctx context.Context, token string, userID uuid.UUID, issuedAt, expiresAt time.Time) error

	// Consume marks token as spent. It reports false when the token is
	// unknown, expired or already spent.
	Consume(ctx context.Context, token string, now time.Time) (bool, error)

	Revoke(ctx context.Context, token string) error
}

type refreshTokenStore struct {
	db *gorm.DB
}

// NewRefreshTokenStore returns a RefreshTokenStore backed by the refresh_tokens table.
func NewRefreshTokenStore(db *gorm.DB) RefreshTokenStore {
	return &refreshTokenStore{db: db}
}

func (s *refreshTokenStore) Store(ctx context.Context, token string, userID uuid.UUID, issuedAt, expiresAt time.Time) error {
	return conn(ctx, s.db).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: issuedAt.UTC(),
	}).Error
}

func (s *refreshTokenStore) Consume(ctx context.Context, token string, now time.Time) (bool, error) {
	db := conn(ctx, s.db)

	var row model.RefreshTokenModel
	err := db.Where("token = ?", token).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !row.Usable(now) {
		return false, nil
	}

	// Two concurrent redemptions race on this update; only one flips the flag.
	res := db.Model(&model.RefreshTokenModel{}).
		Where("id = ? AND invalidated = ?", row.ID, false).
		Update("invalidated", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *refreshTokenStore) Revoke(ctx context.Context, token string) error {
	return conn(ctx, s.db).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", token).
		Update("invalidated", true).Error
}
