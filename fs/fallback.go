package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/libcache"
)

// FindFallbackLibraries maps library names to libdoc files found directly in
// dirs. A file named Foo.xml provides library Foo. Earlier directories win.
// When parser is non-nil, files that are not valid libdoc XML are skipped.
func FindFallbackLibraries(dirs []string, parser libcache.LibdocParser) (map[string]string, error) {
	libraries := make(map[string]string)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read fallback directory %q: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), libcache.ArtifactExt) {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			if _, ok := libraries[name]; ok {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			if parser != nil && !isLibdoc(parser, path) {
				continue
			}
			libraries[name] = path
		}
	}
	return libraries, nil
}

func isLibdoc(parser libcache.LibdocParser, path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = parser.ParseLibdoc(f)
	return err == nil
}
