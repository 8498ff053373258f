package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/budget-api/config"
)

func TestNewConnectionSQLiteMigrates(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate())

	for _, table := range []string{"users", "refresh_tokens", "budgets", "expenses", "email_queue"} {
		assert.True(t, database.DB().Migrator().HasTable(table), table)
	}
	assert.NoError(t, database.Ping(context.Background()))

	// Running twice is harmless.
	assert.NoError(t, database.Migrate())
}

func TestNewConnectionRejectsUnknownDriver(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Driver: "oracle", URL: "x"})
	assert.ErrorContains(t, err, "oracle")
}
