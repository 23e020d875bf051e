package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/libcache"
)

// Ensure LoggingInterpreter implements libcache.Interpreter.
var _ libcache.Interpreter = (*LoggingInterpreter)(nil)

// LoggingInterpreter wraps an Interpreter with debug logging.
type LoggingInterpreter struct {
	next   libcache.Interpreter
	logger *slog.Logger
}

// NewLoggingInterpreter creates a new LoggingInterpreter.
func NewLoggingInterpreter(next libcache.Interpreter, logger *slog.Logger) *LoggingInterpreter {
	return &LoggingInterpreter{next: next, logger: logger}
}

// Probe delegates to the wrapped interpreter and logs the operation.
func (i *LoggingInterpreter) Probe(ctx context.Context) (env *libcache.Environment, err error) {
	defer func(begin time.Time) {
		var version string
		if env != nil {
			version = env.PythonVersion
		}
		i.logger.Info("probe",
			"version", version,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return i.next.Probe(ctx)
}
