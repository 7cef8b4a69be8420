// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/roadrush/internal/config"
	"github.com/vovakirdan/roadrush/internal/core"
	"github.com/vovakirdan/roadrush/internal/session"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("storage: run not found")

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run recordings.
type Store struct {
	db *sql.DB
}

// RunSummary describes a recorded run without its inputs.
type RunSummary struct {
	ID          string
	Seed        int64
	FieldWidth  float64
	FieldHeight float64
	Frames      int
	GameOver    bool
	Inputs      int
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			field_width REAL NOT NULL,
			field_height REAL NOT NULL,
			config_hash TEXT NOT NULL DEFAULT '',
			frames INTEGER NOT NULL,
			game_over INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_inputs (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			frame INTEGER NOT NULL,
			action TEXT NOT NULL,
			pressed INTEGER NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.addColumn("runs", "config_hash", "TEXT NOT NULL DEFAULT ''")
}

// addColumn adds a column to a table created by an older version.
func (s *Store) addColumn(table, column, decl string) error {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("cannot inspect table %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a recording and its inputs in one transaction.
func (s *Store) SaveRun(rec session.Recording) error {
	if rec.ID == "" {
		return fmt.Errorf("storage: cannot save run without an id")
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, seed, field_width, field_height, config_hash, frames, game_over, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Seed, rec.FieldWidth, rec.FieldHeight, rec.Config, rec.Frames, rec.GameOver,
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run %s: %w", rec.ID, err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO run_inputs (run_id, seq, frame, action, pressed) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range rec.Inputs {
		if _, err := stmt.Exec(rec.ID, i, in.Frame, in.Action.String(), in.Pressed); err != nil {
			return fmt.Errorf("storage: cannot save input %d of run %s: %w", i, rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run %s: %w", rec.ID, err)
	}
	return nil
}

var _ session.RunSaver = (*Store)(nil)

// Runs lists the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.seed, r.field_width, r.field_height, r.frames, r.game_over, r.created_at,
		        (SELECT COUNT(*) FROM run_inputs i WHERE i.run_id = r.id)
		 FROM runs r
		 ORDER BY r.created_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.FieldWidth, &r.FieldHeight, &r.Frames,
			&r.GameOver, &createdAt, &r.Inputs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Run loads a recording with its inputs in order.
// Returns ErrRunNotFound if no run has the given id.
func (s *Store) Run(id string) (session.Recording, error) {
	var rec session.Recording
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, seed, field_width, field_height, config_hash, frames, game_over, created_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Seed, &rec.FieldWidth, &rec.FieldHeight, &rec.Config,
		&rec.Frames, &rec.GameOver, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot load run %s: %w", id, err)
	}
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		"SELECT frame, action, pressed FROM run_inputs WHERE run_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query inputs of run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var in session.Input
		var action string
		if err := rows.Scan(&in.Frame, &action, &in.Pressed); err != nil {
			return rec, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		in.Action = core.ParseAction(action)
		rec.Inputs = append(rec.Inputs, in)
	}

	if err := rows.Err(); err != nil {
		return rec, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// DeleteRun removes a run and its inputs.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if _, err := tx.Exec("DELETE FROM run_inputs WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs of run %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete of run %s: %w", id, err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
