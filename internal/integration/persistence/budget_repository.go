package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
	"github.com/finance-tracker/budget-api/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create inserts a new budget.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	result := conn(ctx, r.db).Create(model.BudgetModelFromEntity(budget))
	return result.Error
}

// FindOwned retrieves a budget by ID when owned by ownerUserID.
func (r *budgetRepository) FindOwned(ctx context.Context, id valueobject.BudgetID, ownerUserID string) (*entity.Budget, error) {
	return r.findOwned(conn(ctx, r.db), id, ownerUserID)
}

// LockOwned is FindOwned under SELECT ... FOR UPDATE. SQLite ignores the
// clause and serialises writers instead.
func (r *budgetRepository) LockOwned(ctx context.Context, id valueobject.BudgetID, ownerUserID string) (*entity.Budget, error) {
	return r.findOwned(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id, ownerUserID)
}

func (r *budgetRepository) findOwned(db *gorm.DB, id valueobject.BudgetID, ownerUserID string) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := db.
		Where("id = ? AND owner_user_id = ?", id.String(), ownerUserID).
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// UpdateOwned saves the mutable attributes of a budget.
func (r *budgetRepository) UpdateOwned(ctx context.Context, budget *entity.Budget) error {
	m := model.BudgetModelFromEntity(budget)
	result := conn(ctx, r.db).
		Model(&model.BudgetModel{}).
		Where("id = ? AND owner_user_id = ?", m.ID, m.OwnerUserID).
		Updates(map[string]any{
			"title":              m.Title,
			"limit_amount":       m.Limit,
			"type_of_budget":     m.TypeOfBudget,
			"max_single_expense": m.MaxSingleExpense,
			"updated_at":         m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

// DeleteOwned removes a budget owned by ownerUserID.
func (r *budgetRepository) DeleteOwned(ctx context.Context, id valueobject.BudgetID, ownerUserID string) (bool, error) {
	result := conn(ctx, r.db).
		Where("id = ? AND owner_user_id = ?", id.String(), ownerUserID).
		Delete(&model.BudgetModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// nullableColumns are the sortable columns that may hold NULL.
var nullableColumns = map[string]bool{"max_single_expense": true}

// FindPageByOwner retrieves one page of ownerUserID's budgets.
func (r *budgetRepository) FindPageByOwner(
	ctx context.Context,
	ownerUserID string,
	page valueobject.PageRequest,
	sortColumn string,
) ([]*entity.Budget, int64, error) {
	db := conn(ctx, r.db)

	var total int64
	if err := db.Model(&model.BudgetModel{}).
		Where("owner_user_id = ?", ownerUserID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if int64(page.Offset()) >= total {
		return []*entity.Budget{}, total, nil
	}

	desc := page.Direction == valueobject.SortDesc
	query := db.Where("owner_user_id = ?", ownerUserID)
	if nullableColumns[sortColumn] {
		// NULLs last in both directions; drivers disagree on the default.
		query = query.Order(sortColumn + " IS NULL")
	}
	query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn}, Desc: desc})
	if sortColumn != "id" {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	}

	var models []model.BudgetModel
	if err := query.
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to query budget page: %w", err)
	}

	budgets := make([]*entity.Budget, len(models))
	for i := range models {
		budgets[i] = models[i].ToEntity()
	}
	return budgets, total, nil
}
