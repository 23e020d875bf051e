package mock

import (
	"context"

	"github.com/fwojciec/libcache"
)

var _ libcache.LibraryService = (*LibraryService)(nil)

// LibraryService is a mock implementation of libcache.LibraryService.
type LibraryService struct {
	AppendLibrariesFn   func(ctx context.Context, libs []*libcache.Library) ([]*libcache.Library, error)
	FindLibraryByNameFn func(ctx context.Context, name string) (*libcache.Library, error)
	FindLibrariesFn     func(ctx context.Context, filter libcache.LibraryFilter) ([]*libcache.Library, error)
	DeleteLibraryFn     func(ctx context.Context, name string) error
}

func (s *LibraryService) AppendLibraries(ctx context.Context, libs []*libcache.Library) ([]*libcache.Library, error) {
	return s.AppendLibrariesFn(ctx, libs)
}

func (s *LibraryService) FindLibraryByName(ctx context.Context, name string) (*libcache.Library, error) {
	return s.FindLibraryByNameFn(ctx, name)
}

func (s *LibraryService) FindLibraries(ctx context.Context, filter libcache.LibraryFilter) ([]*libcache.Library, error) {
	return s.FindLibrariesFn(ctx, filter)
}

func (s *LibraryService) DeleteLibrary(ctx context.Context, name string) error {
	return s.DeleteLibraryFn(ctx, name)
}
