package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// Period is the accounting window of a budget. A nil Start and End means
// every expense counts.
type Period struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether t falls inside [Start, End).
func (p Period) Contains(t time.Time) bool {
	if p.Start != nil && t.Before(*p.Start) {
		return false
	}
	if p.End != nil && !t.Before(*p.End) {
		return false
	}
	return true
}

// CurrentPeriod returns the window containing now for the given budget type.
// Weeks start on Monday and every boundary is computed in UTC.
func CurrentPeriod(typ TypeOfBudget, now time.Time) Period {
	now = now.UTC()
	var start, end time.Time

	switch typ {
	case TypeOfBudgetDaily:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
	case TypeOfBudgetWeekly:
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 7)
	case TypeOfBudgetYearly:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	case TypeOfBudgetOneTime:
		return Period{}
	default:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, 0)
	}

	return Period{Start: &start, End: &end}
}

// BudgetStatus is a derived snapshot of spending against a budget's limit.
// It is recomputed for every query and never stored.
type BudgetStatus struct {
	BudgetID     valueobject.BudgetID
	Title        string
	TypeOfBudget TypeOfBudget
	Limit        decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	Overspent    decimal.Decimal
	PercentUsed  decimal.Decimal
	OverLimit    bool
	ExpenseCount int64
	Period       Period
	ComputedAt   time.Time
}

// ComputeBudgetStatus derives the status of b given what was spent in period.
// Remaining is floored at zero; the excess over the limit is reported as Overspent.
func ComputeBudgetStatus(b *Budget, spent decimal.Decimal, expenseCount int64, period Period, now time.Time) *BudgetStatus {
	remaining := b.Limit.Sub(spent)
	overspent := decimal.Zero
	if remaining.IsNegative() {
		overspent = remaining.Neg()
		remaining = decimal.Zero
	}

	return &BudgetStatus{
		BudgetID:     b.ID,
		Title:        b.Title,
		TypeOfBudget: b.TypeOfBudget,
		Limit:        b.Limit,
		Spent:        spent,
		Remaining:    remaining,
		Overspent:    overspent,
		PercentUsed:  percentUsed(b.Limit, spent),
		OverLimit:    spent.GreaterThan(b.Limit),
		ExpenseCount: expenseCount,
		Period:       period,
		ComputedAt:   now.UTC(),
	}
}

func percentUsed(limit, spent decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		if spent.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return spent.Div(limit).Mul(hundred).Round(moneyScale)
}
