package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Tanfilov/democrac-server/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite (pure-Go driver, no CGO).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddRun stores a run with its assignments and unmatched names.
func (s *SQLiteStore) AddRun(run *types.Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (timestamp, records_path, images_dir, total, matched)
		VALUES (?, ?, ?, ?, ?)
	`,
		run.Timestamp.UTC().Format(time.RFC3339Nano),
		run.RecordsPath,
		run.ImagesDir,
		run.Total,
		run.Matched,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, a := range run.Assignments {
		_, err := tx.Exec(`
			INSERT INTO assignments (run_id, record_name, image, kind)
			VALUES (?, ?, ?, ?)
		`, id, a.RecordName, a.Image, string(a.Kind))
		if err != nil {
			return 0, fmt.Errorf("inserting assignment: %w", err)
		}
	}

	for _, name := range run.Unmatched {
		_, err := tx.Exec(`
			INSERT INTO unmatched (run_id, record_name)
			VALUES (?, ?)
		`, id, name)
		if err != nil {
			return 0, fmt.Errorf("inserting unmatched record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// GetRun retrieves one run by ID, fully populated.
func (s *SQLiteStore) GetRun(id int64) (*types.Run, error) {
	run, err := s.scanRun(s.db.QueryRow(`
		SELECT id, timestamp, records_path, images_dir, total, matched
		FROM runs WHERE id = ?
	`, id))
	if err != nil {
		return nil, err
	}
	return s.populate(run)
}

// GetLatestRun retrieves the most recent run.
func (s *SQLiteStore) GetLatestRun() (*types.Run, error) {
	run, err := s.scanRun(s.db.QueryRow(`
		SELECT id, timestamp, records_path, images_dir, total, matched
		FROM runs ORDER BY id DESC LIMIT 1
	`))
	if err != nil {
		return nil, err
	}
	return s.populate(run)
}

// GetRuns retrieves all runs, oldest first, without per-record details.
func (s *SQLiteStore) GetRuns() ([]*types.Run, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, records_path, images_dir, total, matched
		FROM runs ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*types.Run
	for rows.Next() {
		run, err := s.scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanRun(row scanner) (*types.Run, error) {
	var run types.Run
	var ts string

	err := row.Scan(&run.ID, &ts, &run.RecordsPath, &run.ImagesDir, &run.Total, &run.Matched)
	if err == sql.ErrNoRows {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing run timestamp: %w", err)
	}
	return &run, nil
}

// populate loads the assignments and unmatched names for run.
func (s *SQLiteStore) populate(run *types.Run) (*types.Run, error) {
	rows, err := s.db.Query(`
		SELECT record_name, image, kind
		FROM assignments WHERE run_id = ? ORDER BY rowid
	`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a types.Assignment
		var kind string
		if err := rows.Scan(&a.RecordName, &a.Image, &kind); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		a.Kind = types.MatchKind(kind)
		run.Assignments = append(run.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	urows, err := s.db.Query(`
		SELECT record_name FROM unmatched WHERE run_id = ? ORDER BY rowid
	`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("querying unmatched records: %w", err)
	}
	defer urows.Close()

	for urows.Next() {
		var name string
		if err := urows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning unmatched record: %w", err)
		}
		run.Unmatched = append(run.Unmatched, name)
	}
	return run, urows.Err()
}
