// Package db sets up/opens the program database.
package db

import (
	"database/sql"
	"fmt"

	"framerec/internal/utils/logging"

	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"
)

// Database holds the open settings database.
type Database struct {
	DB *sql.DB
}

// InitDB opens the database at path and makes sure every table exists.
func InitDB(path string) (d *Database, err error) {
	d = new(Database)
	d.DB, err = sql.Open(dbDriver, path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	// Enable foreign key enforcement
	if _, err = d.DB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		d.DB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// One connection keeps the PRAGMA in effect for every statement
	d.DB.SetMaxOpenConns(1)

	if err = d.initTables(); err != nil {
		d.DB.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() (err error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logging.E("transaction rollback failed: %v", rollbackErr)
			}
		}
	}()

	if err = initRecordersTable(tx); err != nil {
		return err
	}

	if err = initRecorderInputsTable(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
