package libcache

import "context"

// Generator produces libdoc artifacts.
type Generator interface {
	// Generate writes the libdoc XML for the named library into cacheDir
	// and returns the artifact path. The artifact appears at its final path
	// only once it is completely written.
	Generate(ctx context.Context, name, cacheDir string) (string, error)
}
