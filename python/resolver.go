package python

import (
	"context"

	"github.com/fwojciec/libcache"
)

// Ensure Resolver implements libcache.Resolver at compile time.
var _ libcache.Resolver = (*Resolver)(nil)

// Resolver resolves requested library names by trying its strategies in order.
type Resolver struct {
	Strategies []libcache.ResolveStrategy
}

// NewResolver returns a Resolver over loader that first tries a direct
// import and then a parent member lookup.
func NewResolver(loader ModuleLoader) *Resolver {
	return &Resolver{
		Strategies: []libcache.ResolveStrategy{
			NewDirectStrategy(loader),
			NewMemberStrategy(loader),
		},
	}
}

// Resolve substitutes bundled library aliases and runs the strategies.
// When every strategy fails, the error names the requested library and the
// most relevant import failure.
func (r *Resolver) Resolve(ctx context.Context, name string) (*libcache.Unit, error) {
	if name == "" {
		return nil, libcache.Errorf(libcache.EINVALID, "library name required")
	}

	importName := libcache.QualifyName(name)

	var cause error
	for _, strategy := range r.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		unit, err := strategy.Resolve(ctx, importName)
		if err != nil {
			cause = err
			continue
		}
		if unit != nil {
			return unit, nil
		}
	}

	if cause == nil {
		cause = noModule(importName)
	}
	if code := libcache.ErrorCode(cause); code != libcache.ENOTFOUND && code != libcache.EINVALID {
		return nil, cause
	}
	return nil, libcache.Errorf(libcache.ENOTFOUND, "Could not import '%s': '%s'", name, libcache.ErrorMessage(cause))
}
