// Package robot generates libdoc artifacts by running Robot Framework's
// libdoc tool in a Python interpreter.
package robot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fwojciec/libcache"
	"github.com/google/uuid"
)

// Ensure Generator implements libcache.Generator at compile time.
var _ libcache.Generator = (*Generator)(nil)

// libdocScript runs libdoc for argv[1] into argv[2] with the extra search
// paths from argv[3:] appended to sys.path, matching how libraries are
// resolved.
const libdocScript = `import sys
name, output = sys.argv[1], sys.argv[2]
sys.path.extend(sys.argv[3:])
from robot.libdoc import libdoc_cli
libdoc_cli(["--format", "XML", name, output])
`

// Generator runs Robot Framework's libdoc for one library at a time.
//
// Output is written to a uniquely named temporary file in the cache directory,
// validated, and renamed over the final artifact path, so a freshness check
// never sees a partially written artifact.
type Generator struct {
	// Python is the interpreter command name or path.
	Python string

	// SearchPaths are appended to the interpreter's module search path for
	// the libdoc process.
	SearchPaths []string

	// Parser validates generated artifacts. Validation is skipped when nil.
	Parser libcache.LibdocParser

	// Environ returns the base environment. Defaults to os.Environ.
	Environ func() []string
}

// NewGenerator returns a Generator using the given interpreter.
func NewGenerator(python string, searchPaths []string, parser libcache.LibdocParser) *Generator {
	return &Generator{
		Python:      python,
		SearchPaths: searchPaths,
		Parser:      parser,
		Environ:     os.Environ,
	}
}

// Generate writes the libdoc XML for name into cacheDir.
func (g *Generator) Generate(ctx context.Context, name, cacheDir string) (path string, err error) {
	if name == "" {
		return "", libcache.Errorf(libcache.EINVALID, "library name required")
	}

	final := filepath.Join(cacheDir, libcache.ArtifactName(name))
	tmp := filepath.Join(cacheDir, "."+libcache.ArtifactName(name)+"."+uuid.NewString()+".tmp")
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, g.Python, LibdocArgs(name, tmp, g.SearchPaths)...) //nolint:gosec // user provided interpreter
	cmd.Env = g.environ()
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", fmt.Errorf("libdoc failed for %q (exit code %d): %w\n%s",
			name, exitCode, err, strings.TrimSpace(output.String()))
	}

	if err := g.validate(tmp); err != nil {
		return "", err
	}

	if err := os.Rename(tmp, final); err != nil {
		return "", fmt.Errorf("commit artifact: %w", err)
	}
	return final, nil
}

func (g *Generator) validate(path string) error {
	if g.Parser == nil {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return libcache.Errorf(libcache.EINVALID, "libdoc produced no artifact: %s", err)
	}
	defer f.Close()

	_, err = g.Parser.ParseLibdoc(f)
	return err
}

func (g *Generator) environ() []string {
	if g.Environ == nil {
		return os.Environ()
	}
	return g.Environ()
}

// LibdocArgs returns the interpreter arguments generating the libdoc for
// name into output. Empty search paths are dropped.
func LibdocArgs(name, output string, searchPaths []string) []string {
	args := []string{"-c", libdocScript, name, output}
	for _, p := range searchPaths {
		if p != "" {
			args = append(args, p)
		}
	}
	return args
}
