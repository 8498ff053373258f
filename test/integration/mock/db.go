package mock

import (
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/finance-tracker/budget-api/internal/infra/db"
)

var (
	dbOnce   sync.Once
	sharedDb *Db
)

// Db is the suite's shared in-memory SQLite database. Its tables are looked
// up by name.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
}

// NewDb opens and migrates the shared database on first use.
func NewDb() *Db {
	dbOnce.Do(func() {
		sharedDb = openShared()
	})
	return sharedDb
}

func openShared() *Db {
	conn, err := db.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	if err := conn.AutoMigrate(db.Schema()...); err != nil {
		panic(fmt.Sprintf("failed to migrate database: %s", err))
	}

	models := make(map[string]any)
	for _, m := range db.Schema() {
		stmt := &gorm.Statement{DB: conn}
		if err := stmt.Parse(m); err != nil {
			panic(err)
		}
		models[stmt.Schema.Table] = m
	}
	return &Db{DbConn: conn, models: models}
}

// ClearDB deletes every row of every table.
func (d *Db) ClearDB() error {
	return d.DbConn.Transaction(func(tx *gorm.DB) error {
		for _, table := range d.tables() {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// GetModel returns a model value for table, for building typed queries.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}

func (d *Db) tables() []string {
	tables := make([]string, 0, len(d.models))
	for table := range d.models {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
