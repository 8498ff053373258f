package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          string          `gorm:"type:varchar(64);primaryKey"`
	BudgetID    string          `gorm:"type:varchar(64);index:idx_expenses_budget_spent,priority:1;not null"`
	OwnerUserID string          `gorm:"type:varchar(64);index;not null"`
	Description string          `gorm:"type:varchar(255)"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SpentAt     time.Time       `gorm:"index:idx_expenses_budget_spent,priority:2;not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	id, _ := valueobject.ExpenseIDOf(m.ID)
	budgetID, _ := valueobject.BudgetIDOf(m.BudgetID)

	return &entity.Expense{
		ID:          id,
		BudgetID:    budgetID,
		OwnerUserID: m.OwnerUserID,
		Description: m.Description,
		Amount:      m.Amount,
		SpentAt:     m.SpentAt.UTC(),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

// ExpenseModelFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseModelFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          e.ID.String(),
		BudgetID:    e.BudgetID.String(),
		OwnerUserID: e.OwnerUserID,
		Description: e.Description,
		Amount:      e.Amount,
		SpentAt:     e.SpentAt,
		CreatedAt:   e.CreatedAt,
	}
}
