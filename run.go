package libcache

import (
	"context"
	"time"
)

// Run records one invocation of the import pipeline.
type Run struct {
	ID         string    `json:"id"`
	Libraries  []string  `json:"libraries"`
	CacheDir   string    `json:"cacheDir"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if len(r.Libraries) == 0 {
		return Errorf(EINVALID, "run libraries required")
	}
	if r.FinishedAt.Before(r.StartedAt) {
		return Errorf(EINVALID, "run finished before it started")
	}
	return nil
}

// RunService represents a service for recording import runs.
type RunService interface {
	// CreateRun stores a finished run and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRuns retrieves runs, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
