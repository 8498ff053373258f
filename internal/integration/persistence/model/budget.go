package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID               string           `gorm:"type:varchar(64);primaryKey"`
	OwnerUserID      string           `gorm:"type:varchar(64);index;not null"`
	Title            string           `gorm:"type:varchar(100);not null"`
	Limit            decimal.Decimal  `gorm:"column:limit_amount;type:decimal(15,2);not null"`
	TypeOfBudget     string           `gorm:"type:varchar(20);not null"`
	MaxSingleExpense *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt        time.Time        `gorm:"not null"`
	UpdatedAt        time.Time        `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	// Stored ids are never empty
	id, _ := valueobject.BudgetIDOf(m.ID)

	return &entity.Budget{
		ID:               id,
		OwnerUserID:      m.OwnerUserID,
		Title:            m.Title,
		Limit:            m.Limit,
		TypeOfBudget:     entity.TypeOfBudget(m.TypeOfBudget),
		MaxSingleExpense: m.MaxSingleExpense,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

// BudgetModelFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetModelFromEntity(b *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:               b.ID.String(),
		OwnerUserID:      b.OwnerUserID,
		Title:            b.Title,
		Limit:            b.Limit,
		TypeOfBudget:     string(b.TypeOfBudget),
		MaxSingleExpense: b.MaxSingleExpense,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
