package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitExceeded(now time.Time) *AlertEmail {
	owner := NewUser("ana@example.com", "Ana", "hash")
	return NewLimitExceededEmail(owner, BudgetAlert{
		BudgetID:     "b-1",
		BudgetTitle:  "Groceries",
		TypeOfBudget: TypeOfBudgetMonthly,
		Limit:        decimal.RequireFromString("500"),
		Spent:        decimal.RequireFromString("512.30"),
	}, now)
}

func TestNewLimitExceededEmail(t *testing.T) {
	email := limitExceeded(fixedNow)

	assert.Equal(t, "ana@example.com", email.To)
	assert.Equal(t, "Ana", email.ToName)
	assert.Equal(t, `Budget "Groceries" is over its limit`, email.Subject)
	assert.Equal(t, DeliveryPending, email.Status)
	assert.Equal(t, fixedNow, email.NextAttemptAt)
	assert.True(t, email.Alert.Overspent().Equal(decimal.RequireFromString("12.30")))
}

func TestBudgetAlertOverspentNeverNegative(t *testing.T) {
	alert := BudgetAlert{Limit: decimal.NewFromInt(10), Spent: decimal.NewFromInt(4)}
	assert.True(t, alert.Overspent().IsZero())
}

func TestAlertEmailAttemptFailed(t *testing.T) {
	t.Run("temporary failure is rescheduled with backoff", func(t *testing.T) {
		email := limitExceeded(fixedNow)

		email.AttemptFailed(errors.New("timeout"), false, fixedNow)

		assert.Equal(t, DeliveryPending, email.Status)
		assert.Equal(t, 1, email.Attempts)
		assert.Equal(t, fixedNow.Add(time.Minute), email.NextAttemptAt)
		assert.Nil(t, email.FinishedAt)

		email.AttemptFailed(errors.New("timeout"), false, fixedNow)
		assert.Equal(t, fixedNow.Add(5*time.Minute), email.NextAttemptAt)
	})

	t.Run("permanent failure stops immediately", func(t *testing.T) {
		email := limitExceeded(fixedNow)

		email.AttemptFailed(errors.New("422 validation"), true, fixedNow)

		assert.Equal(t, DeliveryFailed, email.Status)
		assert.Equal(t, "422 validation", email.LastError)
		require.NotNil(t, email.FinishedAt)
	})

	t.Run("exhausted attempts fail", func(t *testing.T) {
		email := limitExceeded(fixedNow)

		for i := 0; i < email.MaxAttempts; i++ {
			email.AttemptFailed(errors.New("timeout"), false, fixedNow)
		}

		assert.Equal(t, DeliveryFailed, email.Status)
		assert.False(t, email.CanRetry())
	})
}

func TestAlertEmailDelivered(t *testing.T) {
	email := limitExceeded(fixedNow)

	email.Delivered("re_123", fixedNow.Add(time.Second))

	assert.Equal(t, DeliverySent, email.Status)
	assert.Equal(t, "re_123", email.ProviderID)
	require.NotNil(t, email.FinishedAt)
	assert.Equal(t, fixedNow.Add(time.Second), *email.FinishedAt)
}
