package mock

import (
	"context"

	"github.com/fwojciec/libcache"
)

var _ libcache.Interpreter = (*Interpreter)(nil)

// Interpreter is a mock implementation of libcache.Interpreter.
type Interpreter struct {
	ProbeFn func(ctx context.Context) (*libcache.Environment, error)
}

func (i *Interpreter) Probe(ctx context.Context) (*libcache.Environment, error) {
	return i.ProbeFn(ctx)
}
