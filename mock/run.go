package mock

import (
	"context"

	"github.com/fwojciec/libcache"
)

var _ libcache.RunService = (*RunService)(nil)

// RunService is a mock implementation of libcache.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *libcache.Run) error
	FindRunsFn  func(ctx context.Context, filter libcache.RunFilter) ([]*libcache.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *libcache.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRuns(ctx context.Context, filter libcache.RunFilter) ([]*libcache.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
