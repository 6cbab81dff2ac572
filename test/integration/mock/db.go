// Package mock provides in-memory test doubles for the integration suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbOnce sync.Once
var sharedDb *Db

// Db wraps an in-memory sqlite database migrated with the ledger schema.
// The connection is shared by the test server and the step definitions, so
// the pool is capped at a single connection.
type Db struct {
	DbConn *gorm.DB
	schema string
	models map[string]any
}

// NewDb opens (once per test run) an in-memory database and migrates the
// given table-name → model mapping.
func NewDb(schema string, models map[string]any) *Db {
	dbOnce.Do(func() {
		sharedDb = openDb(schema, models)
	})
	return sharedDb
}

func openDb(schema string, models map[string]any) *Db {
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", schema))
	if err != nil {
		panic(err)
	}
	conn.SetMaxOpenConns(1)

	gormDb, err := gorm.Open(sqlite.Dialector{Conn: conn}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}

	d := &Db{
		DbConn: gormDb,
		schema: schema,
		models: models,
	}

	if err := d.migrate(); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}
	return d
}

func (d *Db) migrate() error {
	modelList := make([]any, 0, len(d.models))
	for _, m := range d.models {
		modelList = append(modelList, m)
	}
	if err := d.DbConn.AutoMigrate(modelList...); err != nil {
		return err
	}
	for _, m := range modelList {
		if !d.DbConn.Migrator().HasTable(m) {
			return fmt.Errorf("table for model %T was not created", m)
		}
	}
	return nil
}

// Tables are cleared children first so the foreign-key checks the test
// database enforces are never tripped mid-wipe.
var clearOrder = []string{
	"payments",
	"work_items",
	"projects",
	"password_reset_tokens",
	"refresh_tokens",
	"email_queue",
	"users",
}

// ClearDB empties every registered table. Called before each scenario.
func (d *Db) ClearDB() error {
	cleared := make(map[string]bool, len(d.models))
	for _, table := range clearOrder {
		m, ok := d.models[table]
		if !ok {
			continue
		}
		if err := d.wipe(table, m); err != nil {
			return err
		}
		cleared[table] = true
	}
	for table, m := range d.models {
		if cleared[table] {
			continue
		}
		if err := d.wipe(table, m); err != nil {
			return err
		}
	}
	return nil
}

func (d *Db) wipe(table string, m any) error {
	// Progress payments reference their contract payment row, so they
	// are removed ahead of the full wipe.
	if table == "payments" {
		err := d.DbConn.Unscoped().Where("contract_payment_id IS NOT NULL").Delete(m).Error
		if err != nil {
			return fmt.Errorf("failed to clear progress payments: %w", err)
		}
	}
	err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
	if err != nil {
		return fmt.Errorf("failed to clear table %s: %w", table, err)
	}
	return nil
}

// GetModel returns the registered model for a table name, for the
// reflection-based db assertion steps.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
