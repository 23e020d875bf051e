package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/libcache"
)

// Ensure LoggingGenerator implements libcache.Generator.
var _ libcache.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with debug logging.
type LoggingGenerator struct {
	next   libcache.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next libcache.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) Generate(ctx context.Context, name, cacheDir string) (path string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate",
			"name", name,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, name, cacheDir)
}
