// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report persists run summaries to a local SQLite database so past
// verification runs can be listed and re-inspected. Saving a run never
// affects its classifications; the store is strictly write-after-the-fact.
package report

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/refcheck/pkg/types"
)

const dbFile = "refcheck.db"

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// RunMeta describes the configuration a run was executed with.
type RunMeta struct {
	Started   time.Time
	Tolerance int
	Backend   string
}

// RunRecord is one saved run as listed by the history command.
type RunRecord struct {
	ID             int64
	Started        time.Time
	Tolerance      int
	Backend        string
	Total          int
	WithIdentifier int
	Verified       int
	Mismatched     int
	NoIdentifier   int
}

// Open opens or creates the run-history database under dir, creating the
// schema when absent.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reports directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started TEXT NOT NULL,
			tolerance INTEGER NOT NULL,
			backend TEXT NOT NULL,
			total INTEGER NOT NULL,
			with_identifier INTEGER NOT NULL,
			verified INTEGER NOT NULL,
			mismatched INTEGER NOT NULL,
			no_identifier INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			ordinal INTEGER NOT NULL,
			text TEXT NOT NULL,
			doi TEXT,
			title TEXT,
			classification TEXT NOT NULL,
			PRIMARY KEY (run_id, ordinal)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_classification
			ON entries(classification)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Save persists one run summary with its per-entry outcomes and returns the
// new run's ID.
func (s *Store) Save(sum *types.RunSummary, meta RunMeta) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started, tolerance, backend, total, with_identifier, verified, mismatched, no_identifier)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.Started.UTC().Format(time.RFC3339), meta.Tolerance, meta.Backend,
		sum.Total, sum.WithIdentifier, sum.Verified, sum.Mismatched, sum.NoIdentifier,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, out := range sum.Outcomes {
		if _, err := tx.Exec(
			`INSERT INTO entries (run_id, ordinal, text, doi, title, classification)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, out.Reference.Ordinal, out.Reference.Text, out.DOI, out.Title, string(out.Classification),
		); err != nil {
			return 0, fmt.Errorf("inserting entry %d: %w", out.Reference.Ordinal, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists saved runs, most recent first, up to limit (20 when limit is
// not positive).
func (s *Store) Runs(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, started, tolerance, backend, total, with_identifier, verified, mismatched, no_identifier
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Tolerance, &r.Backend,
			&r.Total, &r.WithIdentifier, &r.Verified, &r.Mismatched, &r.NoIdentifier); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
			r.Started = t
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Outcomes returns the per-entry outcomes of one saved run, in input order.
func (s *Store) Outcomes(runID int64) ([]types.Outcome, error) {
	rows, err := s.db.Query(
		`SELECT ordinal, text, doi, title, classification
		 FROM entries WHERE run_id = ? ORDER BY ordinal`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var outs []types.Outcome
	for rows.Next() {
		var out types.Outcome
		var class string
		if err := rows.Scan(&out.Reference.Ordinal, &out.Reference.Text, &out.DOI, &out.Title, &class); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		out.Classification = types.Classification(class)
		outs = append(outs, out)
	}
	return outs, rows.Err()
}
