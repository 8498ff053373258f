// Package db opens and migrates the API's database.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/budget-api/config"
	"github.com/finance-tracker/budget-api/internal/integration/persistence/model"
)

const pingTimeout = 5 * time.Second

var dialectors = map[string]func(dsn string) gorm.Dialector{
	"postgres": postgres.Open,
	"sqlite":   sqlite.Open,
}

// Schema lists the models migrated into every database, in creation order.
func Schema() []any {
	return []any{
		&model.UserModel{},
		&model.RefreshTokenModel{},
		&model.BudgetModel{},
		&model.ExpenseModel{},
		&model.AlertEmailModel{},
	}
}

// Database is an open, pinged connection pool.
type Database struct {
	db *gorm.DB
}

// Open connects with gorm's logger silenced and driver errors translated to
// gorm's sentinels, so repositories can match gorm.ErrDuplicatedKey on any
// driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	open, ok := dialectors[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	gdb, err := gorm.Open(open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		// One connection serialises writers and keeps :memory: shared.
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

// NewConnection opens cfg's database, sizes its pool and checks it answers.
func NewConnection(cfg *config.DatabaseConfig) (*Database, error) {
	gdb, err := Open(cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}
	d := &Database{db: gdb}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver != "sqlite" {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := d.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	slog.Info("Database connection established", "driver", cfg.Driver)
	return d, nil
}

func (d *Database) DB() *gorm.DB {
	return d.db
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	slog.Info("Database connection closed")
	return nil
}

// Migrate creates or updates every table in Schema.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(Schema()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	return nil
}
