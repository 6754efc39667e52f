package db

import (
	"database/sql"
	"embed"
	"fmt"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

const (
	recordersSQL      = "sql/recorders.sql"
	recorderInputsSQL = "sql/recorder_inputs.sql"
)

// initRecordersTable initializes the recorder asset table.
func initRecordersTable(tx *sql.Tx) error {
	return executeSQLFile(tx, recordersSQL, "recorders table")
}

// initRecorderInputsTable initializes the table of input children.
func initRecorderInputsTable(tx *sql.Tx) error {
	return executeSQLFile(tx, recorderInputsSQL, "recorder inputs table")
}

// readSQLFile reads the SQL file stored in memory from go:embed.
func readSQLFile(filename string) (string, error) {
	data, err := sqlFiles.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read SQL file %s: %w", filename, err)
	}
	return string(data), nil
}

// executeSQLFile executes the SQL file stored in memory from go:embed.
func executeSQLFile(tx *sql.Tx, filename, tableName string) error {
	query, err := readSQLFile(filename)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to execute SQL for %s: %w", tableName, err)
	}
	return nil
}
