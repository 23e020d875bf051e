package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/libcache"
)

// Ensure LoggingResolver implements libcache.Resolver.
var _ libcache.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with debug logging.
type LoggingResolver struct {
	next   libcache.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next libcache.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, name string) (unit *libcache.Unit, err error) {
	defer func(begin time.Time) {
		var module, source string
		if unit != nil {
			module, source = unit.Module, unit.SourcePath
		}
		r.logger.Info("resolve",
			"name", name,
			"module", module,
			"source", source,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, name)
}
