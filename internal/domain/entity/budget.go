// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

// MaxBudgetTitleLength is the longest title accepted, in characters.
const MaxBudgetTitleLength = 100

// moneyScale is the number of decimal places money amounts may carry.
const moneyScale = 2

// MaxMoney is the largest amount a decimal(15,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999999.99")

// TypeOfBudget is the period a budget limit applies to.
type TypeOfBudget string

const (
	TypeOfBudgetDaily   TypeOfBudget = "DAILY"
	TypeOfBudgetWeekly  TypeOfBudget = "WEEKLY"
	TypeOfBudgetMonthly TypeOfBudget = "MONTHLY"
	TypeOfBudgetYearly  TypeOfBudget = "YEARLY"
	TypeOfBudgetOneTime TypeOfBudget = "ONE_TIME"
)

// TypesOfBudget lists every budget type in declaration order.
var TypesOfBudget = []TypeOfBudget{
	TypeOfBudgetDaily,
	TypeOfBudgetWeekly,
	TypeOfBudgetMonthly,
	TypeOfBudgetYearly,
	TypeOfBudgetOneTime,
}

// ParseTypeOfBudget accepts any casing and returns the canonical upper-case token.
func ParseTypeOfBudget(raw string) (TypeOfBudget, error) {
	candidate := TypeOfBudget(strings.ToUpper(strings.TrimSpace(raw)))
	for _, t := range TypesOfBudget {
		if t == candidate {
			return t, nil
		}
	}
	return "", domainerror.NewBudgetValidationError(
		domainerror.ErrCodeInvalidTypeOfBudget,
		"typeOfBudget",
		"typeOfBudget must be one of DAILY, WEEKLY, MONTHLY, YEARLY, ONE_TIME",
		domainerror.ErrInvalidTypeOfBudget,
	)
}

// Budget is a user-owned spending limit over a period.
type Budget struct {
	ID               valueobject.BudgetID
	OwnerUserID      string
	Title            string
	Limit            decimal.Decimal
	TypeOfBudget     TypeOfBudget
	MaxSingleExpense *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BudgetFields are the mutable attributes of a budget.
type BudgetFields struct {
	Title            string
	Limit            decimal.Decimal
	TypeOfBudget     TypeOfBudget
	MaxSingleExpense *decimal.Decimal
}

// BudgetPatch carries the attributes a partial update should overwrite.
type BudgetPatch struct {
	Title            valueobject.Optional[string]
	Limit            valueobject.Optional[decimal.Decimal]
	TypeOfBudget     valueobject.Optional[TypeOfBudget]
	MaxSingleExpense valueobject.Optional[decimal.Decimal]
}

// NewBudget validates fields and creates a budget owned by ownerUserID.
func NewBudget(id valueobject.BudgetID, ownerUserID string, fields BudgetFields, now time.Time) (*Budget, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, domainerror.NewBudgetValidationError(
			domainerror.ErrCodeMissingBudgetOwner,
			"ownerUserId",
			"budget owner is required",
			domainerror.ErrMissingBudgetOwner,
		)
	}
	normalized, err := validateFields(fields)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Budget{
		ID:               id,
		OwnerUserID:      ownerUserID,
		Title:            normalized.Title,
		Limit:            normalized.Limit,
		TypeOfBudget:     normalized.TypeOfBudget,
		MaxSingleExpense: normalized.MaxSingleExpense,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Replace overwrites every mutable attribute. A nil cap clears the cap.
func (b *Budget) Replace(fields BudgetFields, now time.Time) error {
	normalized, err := validateFields(fields)
	if err != nil {
		return err
	}

	b.Title = normalized.Title
	b.Limit = normalized.Limit
	b.TypeOfBudget = normalized.TypeOfBudget
	b.MaxSingleExpense = normalized.MaxSingleExpense
	b.UpdatedAt = now.UTC()
	return nil
}

// ApplyPatch overwrites only the attributes present in patch. The budget is
// left untouched when any present attribute is invalid.
func (b *Budget) ApplyPatch(patch BudgetPatch, now time.Time) error {
	fields := b.Fields()
	patch.Title.Apply(func(v string) { fields.Title = v })
	patch.Limit.Apply(func(v decimal.Decimal) { fields.Limit = v })
	patch.TypeOfBudget.Apply(func(v TypeOfBudget) { fields.TypeOfBudget = v })
	patch.MaxSingleExpense.Apply(func(v decimal.Decimal) { fields.MaxSingleExpense = &v })

	return b.Replace(fields, now)
}

// Fields returns a copy of the mutable attributes.
func (b *Budget) Fields() BudgetFields {
	fields := BudgetFields{
		Title:        b.Title,
		Limit:        b.Limit,
		TypeOfBudget: b.TypeOfBudget,
	}
	if b.MaxSingleExpense != nil {
		capCopy := *b.MaxSingleExpense
		fields.MaxSingleExpense = &capCopy
	}
	return fields
}

// IsOwnedBy reports whether userID owns the budget.
func (b *Budget) IsOwnedBy(userID string) bool {
	return b.OwnerUserID == userID
}

// AllowsExpense reports whether amount fits under the per-expense cap.
func (b *Budget) AllowsExpense(amount decimal.Decimal) bool {
	return b.MaxSingleExpense == nil || !amount.GreaterThan(*b.MaxSingleExpense)
}

func validateFields(fields BudgetFields) (BudgetFields, error) {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		return fields, domainerror.NewBudgetValidationError(
			domainerror.ErrCodeInvalidBudgetTitle,
			"title",
			"title must not be blank",
			domainerror.ErrInvalidBudgetTitle,
		)
	}
	if utf8.RuneCountInString(title) > MaxBudgetTitleLength {
		return fields, domainerror.NewBudgetValidationError(
			domainerror.ErrCodeInvalidBudgetTitle,
			"title",
			"title must be at most 100 characters",
			domainerror.ErrInvalidBudgetTitle,
		)
	}

	if fields.Limit.IsNegative() {
		return fields, domainerror.NewBudgetValidationError(
			domainerror.ErrCodeInvalidBudgetLimit,
			"limit",
			"limit must not be negative",
			domainerror.ErrInvalidBudgetLimit,
		)
	}
	if !IsMoneyScale(fields.Limit) || !IsStorableMoney(fields.Limit) {
		return fields, domainerror.NewBudgetValidationError(
			domainerror.ErrCodeInvalidBudgetLimit,
			"limit",
			"limit must have at most 2 decimal places and be at most "+MaxMoney.String(),
			domainerror.ErrInvalidBudgetLimit,
		)
	}

	typ, err := ParseTypeOfBudget(string(fields.TypeOfBudget))
	if err != nil {
		return fields, err
	}

	var maxSingle *decimal.Decimal
	if fields.MaxSingleExpense != nil {
		capValue := *fields.MaxSingleExpense
		if capValue.IsNegative() || !IsMoneyScale(capValue) || !IsStorableMoney(capValue) {
			return fields, domainerror.NewBudgetValidationError(
				domainerror.ErrCodeInvalidMaxSingleExpense,
				"maxSingleExpense",
				"maxSingleExpense must be a non-negative amount with at most 2 decimal places, at most "+MaxMoney.String(),
				domainerror.ErrInvalidMaxSingleExpense,
			)
		}
		maxSingle = &capValue
	}

	return BudgetFields{
		Title:            title,
		Limit:            fields.Limit,
		TypeOfBudget:     typ,
		MaxSingleExpense: maxSingle,
	}, nil
}

// BudgetPage is one page of budgets plus paging metadata.
type BudgetPage struct {
	Content       []*Budget
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
	SortBy        string
	SortDirection string
}

// IsMoneyScale reports whether d has no more than two decimal places.
func IsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(moneyScale))
}

// IsStorableMoney reports whether d fits the money columns.
func IsStorableMoney(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(MaxMoney)
}
