package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/entity"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// BudgetRequest represents the request body for registering or fully
// replacing a budget. Amounts may be JSON numbers or strings.
type BudgetRequest struct {
	Title            string           `json:"title" binding:"required"`
	Limit            *decimal.Decimal `json:"limit" binding:"required"`
	TypeOfBudget     string           `json:"typeOfBudget" binding:"required"`
	MaxSingleExpense *decimal.Decimal `json:"maxSingleExpense"`
}

// PatchBudgetRequest represents the request body for a partial update.
// Missing and null fields are left untouched.
type PatchBudgetRequest struct {
	Title            *string          `json:"title"`
	Limit            *decimal.Decimal `json:"limit"`
	TypeOfBudget     *string          `json:"typeOfBudget"`
	MaxSingleExpense *decimal.Decimal `json:"maxSingleExpense"`
	Timestamp        *time.Time       `json:"timestamp"`
}

// BudgetPageQuery represents the query string of the budget listing.
type BudgetPageQuery struct {
	Page          *int   `form:"page"`
	Size          *int   `form:"size"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection"`
}

// ToPageRequest applies the listing defaults. Values are passed through
// unchecked; the service rejects out-of-range ones.
func (q BudgetPageQuery) ToPageRequest() valueobject.PageRequest {
	page := valueobject.DefaultPageRequest()
	if q.Page != nil {
		page.Page = *q.Page
	}
	if q.Size != nil {
		page.Size = *q.Size
	}
	if sortBy := strings.TrimSpace(q.SortBy); sortBy != "" {
		page.SortBy = sortBy
	}
	if raw := strings.TrimSpace(q.SortDirection); raw != "" {
		direction, err := valueobject.ParseSortDirection(raw)
		if err != nil {
			direction = valueobject.SortDirection(raw)
		}
		page.Direction = direction
	}
	return page
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	BudgetID         string    `json:"budgetId"`
	OwnerUserID      string    `json:"ownerUserId"`
	Title            string    `json:"title"`
	Limit            string    `json:"limit"`
	TypeOfBudget     string    `json:"typeOfBudget"`
	MaxSingleExpense *string   `json:"maxSingleExpense"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BudgetPageResponse represents one page of budgets.
type BudgetPageResponse struct {
	Content       []BudgetResponse `json:"content"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
	SortBy        string           `json:"sortBy"`
	SortDirection string           `json:"sortDirection"`
}

// BudgetStatusResponse represents the spending status of a budget.
type BudgetStatusResponse struct {
	BudgetID     string     `json:"budgetId"`
	Title        string     `json:"title"`
	TypeOfBudget string     `json:"typeOfBudget"`
	Limit        string     `json:"limit"`
	Spent        string     `json:"spent"`
	Remaining    string     `json:"remaining"`
	Overspent    string     `json:"overspent"`
	PercentUsed  string     `json:"percentUsed"`
	OverLimit    bool       `json:"overLimit"`
	ExpenseCount int64      `json:"expenseCount"`
	PeriodStart  *time.Time `json:"periodStart"`
	PeriodEnd    *time.Time `json:"periodEnd"`
	ComputedAt   time.Time  `json:"computedAt"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:         b.ID.String(),
		OwnerUserID:      b.OwnerUserID,
		Title:            b.Title,
		Limit:            money(b.Limit),
		TypeOfBudget:     string(b.TypeOfBudget),
		MaxSingleExpense: optionalMoney(b.MaxSingleExpense),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// ToBudgetPageResponse converts a domain BudgetPage to a BudgetPageResponse DTO.
func ToBudgetPageResponse(page *entity.BudgetPage) BudgetPageResponse {
	content := make([]BudgetResponse, len(page.Content))
	for i, b := range page.Content {
		content[i] = ToBudgetResponse(b)
	}
	return BudgetPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		SortBy:        page.SortBy,
		SortDirection: page.SortDirection,
	}
}

// ToBudgetStatusResponse converts a domain BudgetStatus to a BudgetStatusResponse DTO.
func ToBudgetStatusResponse(s *entity.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		BudgetID:     s.BudgetID.String(),
		Title:        s.Title,
		TypeOfBudget: string(s.TypeOfBudget),
		Limit:        money(s.Limit),
		Spent:        money(s.Spent),
		Remaining:    money(s.Remaining),
		Overspent:    money(s.Overspent),
		PercentUsed:  money(s.PercentUsed),
		OverLimit:    s.OverLimit,
		ExpenseCount: s.ExpenseCount,
		PeriodStart:  s.Period.Start,
		PeriodEnd:    s.Period.End,
		ComputedAt:   s.ComputedAt,
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optionalMoney(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)
	return &s
}
