package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finance-tracker/budget-api/internal/domain/error"
	"github.com/finance-tracker/budget-api/internal/testutil"
)

func TestTransactorRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewBudgetRepository(db)
	transactor := NewTransactor(db)

	b := newBudget(t, "alice", "Groceries", "500", baseTime)
	boom := errors.New("boom")

	err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, b))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.FindOwned(ctx, b.ID, "alice")
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)
}

func TestTransactorNestedCallsJoinOuterTransaction(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewBudgetRepository(db)
	transactor := NewTransactor(db)

	first := newBudget(t, "alice", "First", "1", baseTime)
	second := newBudget(t, "alice", "Second", "2", baseTime)

	err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, first))
		if err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			return repo.Create(ctx, second)
		}); err != nil {
			return err
		}
		return errors.New("abort outer")
	})
	require.Error(t, err)

	_, err = repo.FindOwned(ctx, first.ID, "alice")
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)
	_, err = repo.FindOwned(ctx, second.ID, "alice")
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)
}

func TestTransactorCommits(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewBudgetRepository(db)

	b := newBudget(t, "alice", "Groceries", "500", baseTime)
	require.NoError(t, NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, b)
	}))

	_, err := repo.FindOwned(ctx, b.ID, "alice")
	assert.NoError(t, err)
}
