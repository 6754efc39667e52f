// Package repo is used for performing database operations.
package repo

import (
	"database/sql"

	"framerec/internal/contracts"
	"framerec/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// Store holds the repo stores sharing one database.
type Store struct {
	db            *sql.DB
	recorderStore *RecorderStore
	inputStore    *InputStore
}

// InitStores injects databases into the store methods.
func InitStores(db *sql.DB) *Store {
	return &Store{
		db:            db,
		recorderStore: GetRecorderStore(db),
		inputStore:    GetInputStore(db),
	}
}

// RecorderStore with pointer receiver.
func (s *Store) RecorderStore() contracts.RecorderStore {
	return s.recorderStore
}

// InputStore with pointer receiver.
func (s *Store) InputStore() contracts.InputStore {
	return s.inputStore
}

// ******************************** Private ********************************

// logSQL prints the SQL a query will run, at debug level 2.
func logSQL(query squirrel.Sqlizer) {
	if logging.Level < 2 {
		return
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		logging.W("Cannot print SQL string for query: %v", err)
		return
	}
	logging.P("Executing SQL: %s with args: %v", sqlStr, args)
}

// checkOneRow ensures a write touched exactly the row it targeted.
func checkOneRow(res sql.Result, what string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &NotFoundError{What: what}
	}
	return nil
}

// NotFoundError is returned when a write or lookup targets a row that does not exist.
type NotFoundError struct {
	What string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return "no rows found for " + e.What
}
