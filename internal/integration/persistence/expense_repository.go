package persistence

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
	"github.com/finance-tracker/budget-api/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create inserts a new expense.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return conn(ctx, r.db).Create(model.ExpenseModelFromEntity(expense)).Error
}

// ListByBudget returns every expense of a budget, newest first.
func (r *expenseRepository) ListByBudget(ctx context.Context, budgetID valueobject.BudgetID) ([]*entity.Expense, error) {
	var models []model.ExpenseModel
	result := conn(ctx, r.db).
		Where("budget_id = ?", budgetID.String()).
		Order("spent_at DESC").
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	expenses := make([]*entity.Expense, len(models))
	for i := range models {
		expenses[i] = models[i].ToEntity()
	}
	return expenses, nil
}

// SumInPeriod totals the amounts in Go so SQLite's floating point SUM never
// leaks into money values.
func (r *expenseRepository) SumInPeriod(ctx context.Context, budgetID valueobject.BudgetID, period entity.Period) (decimal.Decimal, int64, error) {
	query := conn(ctx, r.db).
		Model(&model.ExpenseModel{}).
		Where("budget_id = ?", budgetID.String())
	if period.Start != nil {
		query = query.Where("spent_at >= ?", *period.Start)
	}
	if period.End != nil {
		query = query.Where("spent_at < ?", *period.End)
	}

	var amounts []decimal.Decimal
	if err := query.Pluck("amount", &amounts).Error; err != nil {
		return decimal.Zero, 0, err
	}

	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total, int64(len(amounts)), nil
}

// DeleteOwned removes one expense of a budget owned by ownerUserID.
func (r *expenseRepository) DeleteOwned(
	ctx context.Context,
	budgetID valueobject.BudgetID,
	expenseID valueobject.ExpenseID,
	ownerUserID string,
) (bool, error) {
	result := conn(ctx, r.db).
		Where("id = ? AND budget_id = ? AND owner_user_id = ?", expenseID.String(), budgetID.String(), ownerUserID).
		Delete(&model.ExpenseModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteByBudget removes every expense of a budget.
func (r *expenseRepository) DeleteByBudget(ctx context.Context, budgetID valueobject.BudgetID) error {
	return conn(ctx, r.db).
		Where("budget_id = ?", budgetID.String()).
		Delete(&model.ExpenseModel{}).Error
}
