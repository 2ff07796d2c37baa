package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createRunsTable(db); err != nil {
		return fmt.Errorf("creating runs table: %w", err)
	}

	if err := createAssignmentsTable(db); err != nil {
		return fmt.Errorf("creating assignments table: %w", err)
	}

	if err := createUnmatchedTable(db); err != nil {
		return fmt.Errorf("creating unmatched table: %w", err)
	}

	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Insert version if table is empty
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createRunsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			records_path TEXT NOT NULL,
			images_dir TEXT NOT NULL,
			total INTEGER NOT NULL,
			matched INTEGER NOT NULL
		)
	`)
	return err
}

func createAssignmentsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS assignments (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			record_name TEXT NOT NULL,
			image TEXT NOT NULL,
			kind TEXT NOT NULL
		)
	`)
	return err
}

func createUnmatchedTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS unmatched (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			record_name TEXT NOT NULL
		)
	`)
	return err
}
