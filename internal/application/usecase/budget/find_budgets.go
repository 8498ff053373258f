package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// sortColumns maps the sortable budget attributes to their columns.
var sortColumns = map[string]string{
	"budgetId":         "id",
	"title":            "title",
	"limit":            "limit_amount",
	"typeOfBudget":     "type_of_budget",
	"maxSingleExpense": "max_single_expense",
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
}

// FindAllByPage returns one page of the caller's budgets. A page past the
// last one is empty rather than an error.
func (s *Service) FindAllByPage(ctx context.Context, callerUserID string, page valueobject.PageRequest) (*entity.BudgetPage, error) {
	if err := page.Validate(); err != nil {
		return nil, pageError(err)
	}

	column, ok := sortColumns[page.SortBy]
	if !ok {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidSortField,
			fmt.Sprintf("cannot sort budgets by %q", page.SortBy),
			domainerror.ErrInvalidSortField,
		)
	}

	content, total, err := s.budgetRepo.FindPageByOwner(ctx, callerUserID, page, column)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if content == nil {
		content = []*entity.Budget{}
	}

	return &entity.BudgetPage{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    page.TotalPages(total),
		SortBy:        page.SortBy,
		SortDirection: string(page.Direction),
	}, nil
}

func pageError(err error) error {
	switch {
	case errors.Is(err, domainerror.ErrInvalidPageIndex):
		return domainerror.NewBudgetError(domainerror.ErrCodeInvalidPageIndex, "page must not be negative", err)
	case errors.Is(err, domainerror.ErrInvalidPageSize):
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidPageSize,
			fmt.Sprintf("size must be between 1 and %d", valueobject.MaxPageSize),
			err,
		)
	default:
		return domainerror.NewBudgetError(domainerror.ErrCodeInvalidSortDirection, "sortDirection must be ASC or DESC", err)
	}
}
