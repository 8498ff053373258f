package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel is one issued refresh token. A row stays after it is
// spent so reuse can be told apart from a forged token.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// Usable reports whether the token may still be exchanged at now.
func (m *RefreshTokenModel) Usable(now time.Time) bool {
	return !m.Invalidated && m.ExpiresAt.After(now)
}
