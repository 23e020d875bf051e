package libcache

import "time"

// ArtifactExt is the file extension of cached libdoc artifacts.
const ArtifactExt = ".xml"

// ArtifactName returns the cache file name for a library.
func ArtifactName(name string) string {
	return name + ArtifactExt
}

// CacheEntry describes the cached artifact of a library.
type CacheEntry struct {
	Cached  bool      `json:"cached"`
	Path    string    `json:"path,omitempty"`
	ModTime time.Time `json:"modTime"`
}

// FreshnessChecker decides whether a cached artifact is still valid.
type FreshnessChecker interface {
	// IsCached reports whether the artifact for name in cacheDir is at least
	// as new as the unit's source. Only filesystem metadata is consulted.
	IsCached(name string, unit *Unit, cacheDir string) (*CacheEntry, error)
}
