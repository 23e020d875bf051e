package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/libcache"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ libcache.RunService = (*RunService)(nil)

// RunService implements libcache.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a finished run with a generated ID.
func (s *RunService) CreateRun(ctx context.Context, run *libcache.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	names, err := json.Marshal(run.Libraries)
	if err != nil {
		return fmt.Errorf("failed to encode libraries: %w", err)
	}

	run.ID = uuid.New().String()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, libraries, cache_dir, succeeded, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(names), run.CacheDir, run.Succeeded, run.Failed,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339))

	return err
}

// FindRuns retrieves runs, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter libcache.RunFilter) ([]*libcache.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, libraries, cache_dir, succeeded, failed, started_at, finished_at FROM runs")
	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*libcache.Run
	for rows.Next() {
		var run libcache.Run
		var names, startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &names, &run.CacheDir, &run.Succeeded, &run.Failed,
			&startedAt, &finishedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(names), &run.Libraries); err != nil {
			return nil, fmt.Errorf("failed to decode libraries: %w", err)
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
