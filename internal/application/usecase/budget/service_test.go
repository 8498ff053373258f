package budget_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/budget-api/internal/application/adapter"
	"github.com/finance-tracker/budget-api/internal/application/usecase/budget"
	"github.com/finance-tracker/budget-api/internal/domain/entity"
	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/domain/valueobject"
	"github.com/finance-tracker/budget-api/internal/integration/messaging"
	"github.com/finance-tracker/budget-api/internal/integration/metrics"
	"github.com/finance-tracker/budget-api/internal/integration/persistence"
	"github.com/finance-tracker/budget-api/internal/testutil"
)

var start = time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)

type fixture struct {
	service   *budget.Service
	expenses  adapter.ExpenseRepository
	publisher *messaging.RecordingPublisher
	clock     *testutil.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	expenseRepo := persistence.NewExpenseRepository(db)
	f := &fixture{
		expenses:  expenseRepo,
		publisher: messaging.NewRecordingPublisher(),
		clock:     testutil.NewClock(start),
	}
	f.service = budget.NewService(
		persistence.NewBudgetRepository(db),
		expenseRepo,
		persistence.NewTransactor(db),
		f.publisher,
		m,
		f.clock,
	)
	return f
}

func (f *fixture) register(t *testing.T, owner, title, limit string) *entity.Budget {
	t.Helper()
	b, err := f.service.RegisterNewBudget(context.Background(), budget.RegisterBudgetInput{
		Title:        title,
		Limit:        decimal.RequireFromString(limit),
		TypeOfBudget: entity.TypeOfBudgetMonthly,
		OwnerUserID:  owner,
	})
	require.NoError(t, err)
	return b
}

func budgetCode(t *testing.T, err error) domainerror.BudgetErrorCode {
	t.Helper()
	var budgetErr *domainerror.BudgetError
	require.True(t, errors.As(err, &budgetErr), "expected BudgetError, got %v", err)
	return budgetErr.Code
}

func TestRegisterNewBudget(t *testing.T) {
	f := newFixture(t)

	b := f.register(t, "alice", "Groceries", "500")

	assert.False(t, b.ID.IsZero())
	assert.Equal(t, "alice", b.OwnerUserID)
	assert.True(t, b.CreatedAt.Equal(start))

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, entity.BudgetEventRegistered, events[0].Type)
	assert.Equal(t, b.ID.String(), events[0].BudgetID)
}

func TestRegisterNewBudgetRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RegisterNewBudget(context.Background(), budget.RegisterBudgetInput{
		Title:        "",
		Limit:        decimal.RequireFromString("10"),
		TypeOfBudget: entity.TypeOfBudgetMonthly,
		OwnerUserID:  "alice",
	})

	assert.Equal(t, domainerror.ErrCodeInvalidBudgetTitle, budgetCode(t, err))
	assert.Empty(t, f.publisher.Events())
}

func TestGetBudgetByIDIsScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.register(t, "alice", "Groceries", "500")

	got, found, err := f.service.GetBudgetByID(ctx, b.ID.String(), "alice")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Groceries", got.Title)

	_, found, err = f.service.GetBudgetByID(ctx, b.ID.String(), "mallory")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = f.service.GetBudgetByID(ctx, "does-not-exist", "alice")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = f.service.GetBudgetByID(ctx, "", "alice")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindAllByPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"Rent", "Food", "Travel"} {
		f.register(t, "alice", title, "100")
		f.clock.Advance(time.Minute)
	}
	f.register(t, "bob", "Bob's", "100")

	page, err := f.service.FindAllByPage(ctx, "alice", valueobject.PageRequest{
		Page: 0, Size: 2, SortBy: "title", Direction: valueobject.SortAsc,
	})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Food", page.Content[0].Title)
	assert.Equal(t, "Rent", page.Content[1].Title)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "ASC", page.SortDirection)

	past, err := f.service.FindAllByPage(ctx, "alice", valueobject.PageRequest{
		Page: 5, Size: 2, SortBy: "createdAt", Direction: valueobject.SortDesc,
	})
	require.NoError(t, err)
	assert.Empty(t, past.Content)
	assert.NotNil(t, past.Content)
	assert.Equal(t, int64(3), past.TotalElements)

	huge, err := f.service.FindAllByPage(ctx, "alice", valueobject.PageRequest{
		Page: math.MaxInt / 2, Size: 4, SortBy: "title", Direction: valueobject.SortAsc,
	})
	require.NoError(t, err)
	assert.Empty(t, huge.Content, "an overflowing page is past the last one")
	assert.Equal(t, math.MaxInt/2, huge.Page)
	assert.Equal(t, int64(3), huge.TotalElements)
}

func TestFindAllByPageRejectsBadRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  valueobject.PageRequest
		want domainerror.BudgetErrorCode
	}{
		{name: "negative page", req: valueobject.PageRequest{Page: -1, Size: 5, SortBy: "title", Direction: valueobject.SortAsc}, want: domainerror.ErrCodeInvalidPageIndex},
		{name: "zero size", req: valueobject.PageRequest{Size: 0, SortBy: "title", Direction: valueobject.SortAsc}, want: domainerror.ErrCodeInvalidPageSize},
		{name: "unknown sort field", req: valueobject.PageRequest{Size: 5, SortBy: "colour", Direction: valueobject.SortAsc}, want: domainerror.ErrCodeInvalidSortField},
		{name: "unknown direction", req: valueobject.PageRequest{Size: 5, SortBy: "title", Direction: "UP"}, want: domainerror.ErrCodeInvalidSortDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.FindAllByPage(ctx, "alice", tt.req)
			assert.Equal(t, tt.want, budgetCode(t, err))
		})
	}
}

func TestGetBudgetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.register(t, "alice", "Groceries", "500")

	for _, e := range []struct {
		amount  string
		spentAt time.Time
	}{
		{amount: "120.25", spentAt: start.Add(-24 * time.Hour)},
		{amount: "80", spentAt: start},
		{amount: "999", spentAt: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
	} {
		expense, err := entity.NewExpense(b, "", decimal.RequireFromString(e.amount), e.spentAt, start)
		require.NoError(t, err)
		require.NoError(t, f.expenses.Create(ctx, expense))
	}

	status, err := f.service.GetBudgetStatus(ctx, b.ID.String(), "alice")
	require.NoError(t, err)

	assert.True(t, status.Spent.Equal(decimal.RequireFromString("200.25")), "spent %s", status.Spent)
	assert.True(t, status.Remaining.Equal(decimal.RequireFromString("299.75")))
	assert.Equal(t, int64(2), status.ExpenseCount)
	assert.False(t, status.OverLimit)
	require.NotNil(t, status.Period.Start)
	assert.True(t, status.Period.Start.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))

	_, err = f.service.GetBudgetStatus(ctx, b.ID.String(), "mallory")
	assert.Equal(t, domainerror.ErrCodeBudgetNotFound, budgetCode(t, err))
}

func TestUpdateBudgetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.register(t, "alice", "Groceries", "500")
	f.clock.Advance(time.Hour)

	updated, err := f.service.UpdateBudgetByID(ctx, budget.UpdateBudgetInput{
		ID:           b.ID.String(),
		Title:        "Food",
		Limit:        decimal.RequireFromString("650"),
		TypeOfBudget: entity.TypeOfBudgetWeekly,
		CallerUserID: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "Food", updated.Title)
	assert.True(t, updated.UpdatedAt.Equal(start.Add(time.Hour)))

	stored, found, err := f.service.GetBudgetByID(ctx, b.ID.String(), "alice")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entity.TypeOfBudgetWeekly, stored.TypeOfBudget)

	_, err = f.service.UpdateBudgetByID(ctx, budget.UpdateBudgetInput{
		ID:           b.ID.String(),
		Title:        "Stolen",
		Limit:        decimal.RequireFromString("1"),
		TypeOfBudget: entity.TypeOfBudgetDaily,
		CallerUserID: "mallory",
	})
	assert.Equal(t, domainerror.ErrCodeBudgetNotFound, budgetCode(t, err))

	stored, _, err = f.service.GetBudgetByID(ctx, b.ID.String(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Food", stored.Title)
}

func TestUpdateBudgetContentOnlyChangesPresentFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.register(t, "alice", "Groceries", "500")
	patchedAt := start.Add(3 * time.Hour)

	patched, found, err := f.service.UpdateBudgetContent(ctx, budget.PatchBudgetInput{
		ID:           b.ID.String(),
		Limit:        valueobject.Some(decimal.RequireFromString("750")),
		CallerUserID: "alice",
		Timestamp:    valueobject.Some(patchedAt),
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, patched.Limit.Equal(decimal.RequireFromString("750")))

	stored, _, err := f.service.GetBudgetByID(ctx, b.ID.String(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", stored.Title)
	assert.Equal(t, entity.TypeOfBudgetMonthly, stored.TypeOfBudget)
	assert.True(t, stored.Limit.Equal(decimal.RequireFromString("750")))
	assert.True(t, stored.UpdatedAt.Equal(patchedAt))

	_, found, err = f.service.UpdateBudgetContent(ctx, budget.PatchBudgetInput{
		ID:           b.ID.String(),
		Title:        valueobject.Some("Mine now"),
		CallerUserID: "mallory",
	})
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = f.service.UpdateBudgetContent(ctx, budget.PatchBudgetInput{
		ID:           b.ID.String(),
		Limit:        valueobject.Some(decimal.RequireFromString("-1")),
		CallerUserID: "alice",
	})
	assert.Equal(t, domainerror.ErrCodeInvalidBudgetLimit, budgetCode(t, err))
}

func TestDeleteBudgetByIDIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.register(t, "alice", "Groceries", "500")
	f.publisher.Reset()

	require.NoError(t, f.service.DeleteBudgetByID(ctx, b.ID.String(), "mallory"))
	_, found, err := f.service.GetBudgetByID(ctx, b.ID.String(), "alice")
	require.NoError(t, err)
	assert.True(t, found, "a foreign delete leaves the budget alone")

	require.NoError(t, f.service.DeleteBudgetByID(ctx, b.ID.String(), "alice"))
	require.NoError(t, f.service.DeleteBudgetByID(ctx, b.ID.String(), "alice"))

	_, found, err = f.service.GetBudgetByID(ctx, b.ID.String(), "alice")
	require.NoError(t, err)
	assert.False(t, found)

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, entity.BudgetEventDeleted, events[0].Type)
}
