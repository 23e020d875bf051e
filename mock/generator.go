package mock

import (
	"context"

	"github.com/fwojciec/libcache"
)

var _ libcache.Generator = (*Generator)(nil)

// Generator is a mock implementation of libcache.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, name, cacheDir string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, name, cacheDir string) (string, error) {
	return g.GenerateFn(ctx, name, cacheDir)
}
