// Package runstore keeps a history of training runs in a SQLite
// database: when a run happened, on what data and hardware, with what
// configuration, and how the model scored against the naive baseline.
package runstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("run not found")

// Run is one recorded training run.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time

	Dataset    string
	ConfigJSON string // the forecast.Config the run trained with
	Backend    string
	Hardware   string

	FinalLoss float64

	ModelRMSE float64
	ModelMAE  float64
	ModelMAPE float64
	NaiveRMSE float64
	NaiveMAE  float64
	NaiveMAPE float64

	Skill       float64
	Correlation float64

	CheckpointPath string
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run database at path, creating the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
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
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			dataset TEXT NOT NULL,
			config TEXT NOT NULL,
			backend TEXT,
			hardware TEXT,
			final_loss REAL,
			model_rmse REAL,
			model_mae REAL,
			model_mape REAL,
			naive_rmse REAL,
			naive_mae REAL,
			naive_mape REAL,
			skill REAL,
			correlation REAL,
			checkpoint_path TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts a run and returns its assigned id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
			started_at, finished_at, dataset, config, backend, hardware,
			final_loss, model_rmse, model_mae, model_mape,
			naive_rmse, naive_mae, naive_mape, skill, correlation,
			checkpoint_path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Dataset, run.ConfigJSON, run.Backend, run.Hardware,
		run.FinalLoss, run.ModelRMSE, run.ModelMAE, run.ModelMAPE,
		run.NaiveRMSE, run.NaiveMAE, run.NaiveMAPE, run.Skill, run.Correlation,
		run.CheckpointPath,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// List returns the most recent n runs, newest first. n <= 0 returns
// every run.
func (s *Store) List(ctx context.Context, n int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY id DESC`
	args := []any{}
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns one run by id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %d: %w", id, ErrNotFound)
	}
	return run, err
}

const runColumns = `id, started_at, finished_at, dataset, config, backend, hardware,
	final_loss, model_rmse, model_mae, model_mape,
	naive_rmse, naive_mae, naive_mape, skill, correlation, checkpoint_path`

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var started, finished string

	err := row.Scan(
		&run.ID, &started, &finished, &run.Dataset, &run.ConfigJSON,
		&run.Backend, &run.Hardware,
		&run.FinalLoss, &run.ModelRMSE, &run.ModelMAE, &run.ModelMAPE,
		&run.NaiveRMSE, &run.NaiveMAE, &run.NaiveMAPE,
		&run.Skill, &run.Correlation, &run.CheckpointPath,
	)
	if err != nil {
		return Run{}, err
	}

	if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, fmt.Errorf("run %d: parsing started_at: %w", run.ID, err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, fmt.Errorf("run %d: parsing finished_at: %w", run.ID, err)
	}
	return run, nil
}
