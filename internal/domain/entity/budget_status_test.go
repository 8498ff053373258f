package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentPeriod(t *testing.T) {
	// Thursday
	now := time.Date(2024, time.February, 29, 18, 45, 0, 0, time.UTC)

	tests := []struct {
		typ   TypeOfBudget
		start time.Time
		end   time.Time
	}{
		{
			typ:   TypeOfBudgetDaily,
			start: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			typ:   TypeOfBudgetWeekly,
			start: time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			typ:   TypeOfBudgetMonthly,
			start: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			typ:   TypeOfBudgetYearly,
			start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			p := CurrentPeriod(tt.typ, now)
			require.NotNil(t, p.Start)
			require.NotNil(t, p.End)
			assert.Equal(t, tt.start, *p.Start)
			assert.Equal(t, tt.end, *p.End)
			assert.True(t, p.Contains(now))
			assert.False(t, p.Contains(tt.end))
			assert.True(t, p.Contains(tt.start))
		})
	}

	t.Run("ONE_TIME", func(t *testing.T) {
		p := CurrentPeriod(TypeOfBudgetOneTime, now)
		assert.Nil(t, p.Start)
		assert.Nil(t, p.End)
		assert.True(t, p.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("week starting on sunday rolls back to monday", func(t *testing.T) {
		sunday := time.Date(2024, time.March, 3, 23, 0, 0, 0, time.UTC)
		p := CurrentPeriod(TypeOfBudgetWeekly, sunday)
		assert.Equal(t, time.Date(2024, time.February, 26, 0, 0, 0, 0, time.UTC), *p.Start)
	})
}

func TestComputeBudgetStatus(t *testing.T) {
	b := groceries(t)
	period := CurrentPeriod(b.TypeOfBudget, fixedNow)

	tests := []struct {
		name        string
		spent       string
		remaining   string
		overspent   string
		percentUsed string
		overLimit   bool
	}{
		{name: "nothing spent", spent: "0", remaining: "500", overspent: "0", percentUsed: "0", overLimit: false},
		{name: "partially spent", spent: "125.50", remaining: "374.50", overspent: "0", percentUsed: "25.1", overLimit: false},
		{name: "exactly at limit", spent: "500", remaining: "0", overspent: "0", percentUsed: "100", overLimit: false},
		{name: "over limit", spent: "620", remaining: "0", overspent: "120", percentUsed: "124", overLimit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ComputeBudgetStatus(b, decimal.RequireFromString(tt.spent), 3, period, fixedNow)

			assert.True(t, status.Spent.Equal(decimal.RequireFromString(tt.spent)))
			assert.True(t, status.Remaining.Equal(decimal.RequireFromString(tt.remaining)), "remaining %s", status.Remaining)
			assert.True(t, status.Overspent.Equal(decimal.RequireFromString(tt.overspent)), "overspent %s", status.Overspent)
			assert.True(t, status.PercentUsed.Equal(decimal.RequireFromString(tt.percentUsed)), "percent %s", status.PercentUsed)
			assert.Equal(t, tt.overLimit, status.OverLimit)
			assert.Equal(t, int64(3), status.ExpenseCount)
			assert.Equal(t, b.ID, status.BudgetID)
		})
	}
}

func TestComputeBudgetStatusZeroLimit(t *testing.T) {
	b := groceries(t)
	b.Limit = decimal.Zero

	idle := ComputeBudgetStatus(b, decimal.Zero, 0, Period{}, fixedNow)
	assert.True(t, idle.PercentUsed.IsZero())
	assert.False(t, idle.OverLimit)

	spent := ComputeBudgetStatus(b, decimal.RequireFromString("1"), 1, Period{}, fixedNow)
	assert.True(t, spent.PercentUsed.Equal(decimal.NewFromInt(100)))
	assert.True(t, spent.OverLimit)
	assert.True(t, spent.Remaining.IsZero())
}

func TestNewExpense(t *testing.T) {
	b := groceries(t)

	t.Run("defaults spentAt to now", func(t *testing.T) {
		e, err := NewExpense(b, " milk ", decimal.RequireFromString("3.49"), time.Time{}, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, "milk", e.Description)
		assert.Equal(t, fixedNow, e.SpentAt)
		assert.Equal(t, b.ID, e.BudgetID)
		assert.Equal(t, "u1", e.OwnerUserID)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := NewExpense(b, "", decimal.Zero, fixedNow, fixedNow)
		assert.Error(t, err)
		_, err = NewExpense(b, "", decimal.RequireFromString("-3"), fixedNow, fixedNow)
		assert.Error(t, err)
	})

	t.Run("rejects amounts wider than the money column", func(t *testing.T) {
		_, err := NewExpense(b, "", MaxMoney.Add(decimal.RequireFromString("0.01")), fixedNow, fixedNow)
		assert.Error(t, err)
		_, err = NewExpense(b, "", MaxMoney, fixedNow, fixedNow)
		assert.NoError(t, err)
	})

	t.Run("rejects sub-cent amounts", func(t *testing.T) {
		_, err := NewExpense(b, "", decimal.RequireFromString("0.001"), fixedNow, fixedNow)
		assert.Error(t, err)
	})
}
