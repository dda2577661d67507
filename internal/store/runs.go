package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run summarizes one grading batch.
type Run struct {
	ID              string
	StartedAt       time.Time
	FinishedAt      time.Time
	SubmissionsDir  string
	OutputPath      string
	MaxPoints       int
	Workers         int
	SubmissionCount int
	FailureCount    int
}

// RunRepo records grading runs.
type RunRepo interface {
	// Begin records the start of a run and returns its ID.
	Begin(ctx context.Context, submissionsDir string, maxPoints, workers int) (string, error)

	// Finish records completion counts for a run.
	Finish(ctx context.Context, runID, outputPath string, submissions, failures int) error

	// List returns recent runs, newest first.
	List(ctx context.Context, limit int) ([]Run, error)
}

// NopRunRepo discards run records.
type NopRunRepo struct{}

func (NopRunRepo) Begin(context.Context, string, int, int) (string, error) {
	return uuid.NewString(), nil
}
func (NopRunRepo) Finish(context.Context, string, string, int, int) error { return nil }
func (NopRunRepo) List(context.Context, int) ([]Run, error)               { return nil, nil }

type runRepo struct {
	db *sql.DB
}

func (r *runRepo) Begin(ctx context.Context, submissionsDir string, maxPoints, workers int) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, submissions_dir, max_points, workers)
		VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().UTC(), submissionsDir, maxPoints, workers,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

func (r *runRepo) Finish(ctx context.Context, runID, outputPath string, submissions, failures int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, output_path = ?, submission_count = ?, failure_count = ?
		WHERE id = ?`,
		time.Now().UTC(), outputPath, submissions, failures, runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

func (r *runRepo) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, started_at, COALESCE(finished_at, started_at),
		       submissions_dir, COALESCE(output_path, ''), max_points, workers,
		       COALESCE(submission_count, 0), COALESCE(failure_count, 0)
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.SubmissionsDir, &run.OutputPath, &run.MaxPoints, &run.Workers,
			&run.SubmissionCount, &run.FailureCount,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
