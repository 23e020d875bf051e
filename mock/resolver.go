package mock

import (
	"context"

	"github.com/fwojciec/libcache"
)

var (
	_ libcache.Resolver        = (*Resolver)(nil)
	_ libcache.ResolveStrategy = (*ResolveStrategy)(nil)
)

// Resolver is a mock implementation of libcache.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, name string) (*libcache.Unit, error)
}

func (r *Resolver) Resolve(ctx context.Context, name string) (*libcache.Unit, error) {
	return r.ResolveFn(ctx, name)
}

// ResolveStrategy is a mock implementation of libcache.ResolveStrategy.
type ResolveStrategy struct {
	ResolveFn func(ctx context.Context, name string) (*libcache.Unit, error)
}

func (s *ResolveStrategy) Resolve(ctx context.Context, name string) (*libcache.Unit, error) {
	return s.ResolveFn(ctx, name)
}
