package slog

import (
	"log/slog"

	"github.com/fwojciec/libcache"
)

// Ensure LoggingFreshnessChecker implements libcache.FreshnessChecker.
var _ libcache.FreshnessChecker = (*LoggingFreshnessChecker)(nil)

// LoggingFreshnessChecker wraps a FreshnessChecker with debug logging.
type LoggingFreshnessChecker struct {
	next   libcache.FreshnessChecker
	logger *slog.Logger
}

// NewLoggingFreshnessChecker creates a new LoggingFreshnessChecker.
func NewLoggingFreshnessChecker(next libcache.FreshnessChecker, logger *slog.Logger) *LoggingFreshnessChecker {
	return &LoggingFreshnessChecker{next: next, logger: logger}
}

// IsCached delegates to the wrapped checker and logs the decision.
func (c *LoggingFreshnessChecker) IsCached(name string, unit *libcache.Unit, cacheDir string) (entry *libcache.CacheEntry, err error) {
	defer func() {
		cached := entry != nil && entry.Cached
		c.logger.Info("cache check",
			"name", name,
			"cached", cached,
			"err", err,
		)
	}()
	return c.next.IsCached(name, unit, cacheDir)
}
