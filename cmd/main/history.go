package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS generation_runs (
    run_id         TEXT PRIMARY KEY,
    created_at     TEXT NOT NULL,
    corpus_path    TEXT NOT NULL,
    window_length  INTEGER NOT NULL,
    seed           INTEGER,
    initial_text   TEXT NOT NULL,
    target_length  INTEGER NOT NULL,
    output_length  INTEGER NOT NULL,
    windows        INTEGER NOT NULL,
    observations   INTEGER NOT NULL
);
`

// Run describes one generate invocation. It records how a text was produced,
// not the model itself.
type Run struct {
	ID           string
	CreatedAt    time.Time
	CorpusPath   string
	WindowLength int
	Seed         *int64
	InitialText  string
	TargetLength int
	OutputLength int
	Windows      int
	Observations int
}

// History stores generation runs in SQLite.
type History struct {
	db     *sql.DB
	logger *slog.Logger
}

func setupHistorySchema(db *sql.DB) error {
	_, err := db.Exec(historySchema)
	return err
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string, logger *slog.Logger) (*History, error) {
	file, _, _ := strings.Cut(path, "?")
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err = setupHistorySchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to setup history schema: %w", err)
	}
	return &History{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

// RecordRun stores run, assigning an ID and timestamp when they are unset.
func (h *History) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	var seed sql.NullInt64
	if run.Seed != nil {
		seed = sql.NullInt64{Int64: *run.Seed, Valid: true}
	}

	_, err := h.db.ExecContext(ctx, `
        INSERT INTO generation_runs (run_id, created_at, corpus_path, window_length, seed, initial_text, target_length, output_length, windows, observations)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.CorpusPath,
		run.WindowLength,
		seed,
		run.InitialText,
		run.TargetLength,
		run.OutputLength,
		run.Windows,
		run.Observations,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	h.logger.DebugContext(ctx, "Run recorded",
		slog.String("run_id", run.ID),
		slog.Int("window_length", run.WindowLength),
		slog.Int("output_length", run.OutputLength),
	)
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (h *History) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := h.db.QueryContext(ctx, `
        SELECT run_id, created_at, corpus_path, window_length, seed, initial_text, target_length, output_length, windows, observations
        FROM generation_runs ORDER BY rowid DESC LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		var seed sql.NullInt64
		if err = rows.Scan(&run.ID, &createdAt, &run.CorpusPath, &run.WindowLength, &seed,
			&run.InitialText, &run.TargetLength, &run.OutputLength, &run.Windows, &run.Observations); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse timestamp of run %s: %w", run.ID, err)
		}
		if seed.Valid {
			s := seed.Int64
			run.Seed = &s
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
