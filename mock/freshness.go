package mock

import "github.com/fwojciec/libcache"

var _ libcache.FreshnessChecker = (*FreshnessChecker)(nil)

// FreshnessChecker is a mock implementation of libcache.FreshnessChecker.
type FreshnessChecker struct {
	IsCachedFn func(name string, unit *libcache.Unit, cacheDir string) (*libcache.CacheEntry, error)
}

func (c *FreshnessChecker) IsCached(name string, unit *libcache.Unit, cacheDir string) (*libcache.CacheEntry, error) {
	return c.IsCachedFn(name, unit, cacheDir)
}
