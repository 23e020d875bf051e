// Package fs provides the on-disk libdoc cache: artifact locations, freshness
// checks based on modification times, and discovery of fallback artifacts.
package fs

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/libcache"
)

// Ensure FreshnessChecker implements libcache.FreshnessChecker at compile time.
var _ libcache.FreshnessChecker = (*FreshnessChecker)(nil)

// ArtifactPath returns the location of a library's artifact in cacheDir.
func ArtifactPath(cacheDir, name string) string {
	return filepath.Join(cacheDir, libcache.ArtifactName(name))
}

// EnsureDir creates the cache directory if it does not exist.
func EnsureDir(cacheDir string) error {
	if cacheDir == "" {
		return libcache.Errorf(libcache.EINVALID, "cache directory required")
	}
	return os.MkdirAll(cacheDir, 0755)
}

// ModTime returns the modification time of path, or the zero time if the
// file cannot be stat'ed.
func ModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// FreshnessChecker compares source and artifact modification times.
type FreshnessChecker struct{}

// NewFreshnessChecker returns a new FreshnessChecker.
func NewFreshnessChecker() *FreshnessChecker {
	return &FreshnessChecker{}
}

// IsCached reports whether the artifact of name is still valid for unit.
//
// A missing artifact is never cached. A unit without a known source path is
// never cached either. A source that exists on the path but cannot be
// stat'ed counts as infinitely old, so an existing artifact wins. Otherwise
// the artifact is cached unless the source is strictly newer.
func (c *FreshnessChecker) IsCached(name string, unit *libcache.Unit, cacheDir string) (*libcache.CacheEntry, error) {
	path := ArtifactPath(cacheDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return &libcache.CacheEntry{}, nil
	}

	if unit == nil || unit.SourcePath == "" {
		return &libcache.CacheEntry{ModTime: info.ModTime()}, nil
	}

	if ModTime(unit.SourcePath).After(info.ModTime()) {
		return &libcache.CacheEntry{ModTime: info.ModTime()}, nil
	}

	return &libcache.CacheEntry{
		Cached:  true,
		Path:    path,
		ModTime: info.ModTime(),
	}, nil
}
