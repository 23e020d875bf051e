// Package importer provides the library import pipeline. For every requested
// library it resolves the name, checks the cached artifact and regenerates it
// when stale, isolating failures so one library never aborts the batch.
package importer

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/fwojciec/libcache"
)

// Importer orchestrates the import of keyword libraries.
type Importer struct {
	Resolver    libcache.Resolver
	Freshness   libcache.FreshnessChecker
	Generator   libcache.Generator
	Interpreter libcache.Interpreter

	// Fallbacks maps library names to libdoc files used when importing
	// the library fails.
	Fallbacks map[string]string

	// EnsureDir creates the cache directory. Defaults to os.MkdirAll.
	EnsureDir func(dir string) error
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type    ProgressType
	Name    string
	Index   int
	Total   int
	Cached  bool
	Library *libcache.Library
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

// outcome is the result of processing a single library.
type outcome struct {
	library *libcache.Library
	cached  bool
}

// Import processes names in order and returns one result per distinct name.
// When a name occurs more than once, the last occurrence wins.
//
// Every name is recorded as pending before processing starts. If the cache
// directory cannot be created the partial result is returned with the error.
func (im *Importer) Import(ctx context.Context, names []string, cacheDir string, progress ProgressFunc) (*libcache.Result, error) {
	if len(names) == 0 {
		return nil, libcache.Errorf(libcache.EINVALID, "at least one library name required")
	}

	result := &libcache.Result{Libraries: make(map[string]*libcache.Library, len(names))}
	for _, name := range names {
		result.Libraries[name] = libcache.NewPendingLibrary(name)
	}

	if cacheDir == "" {
		return result, libcache.Errorf(libcache.EINVALID, "cache directory required")
	}
	if err := im.ensureDir(cacheDir); err != nil {
		return result, fmt.Errorf("create cache directory: %w", err)
	}

	for i, name := range names {
		if progress != nil {
			progress(ProgressEvent{Type: ProgressStarted, Name: name, Index: i, Total: len(names)})
		}

		out := im.importLibrary(ctx, name, cacheDir)
		result.Libraries[name] = out.library

		if progress != nil {
			typ := ProgressCompleted
			if out.library.Status == libcache.StatusError {
				typ = ProgressFailed
			}
			progress(ProgressEvent{
				Type:    typ,
				Name:    name,
				Index:   i,
				Total:   len(names),
				Cached:  out.cached,
				Library: out.library,
			})
		}
	}

	result.Environment = im.environment(ctx)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Total: len(names)})
	}

	return result, nil
}

func (im *Importer) ensureDir(dir string) error {
	if im.EnsureDir == nil {
		return os.MkdirAll(dir, 0755)
	}
	return im.EnsureDir(dir)
}

// importLibrary runs the pipeline for one library. Panics are recovered and
// reported as an error result for that library.
func (im *Importer) importLibrary(ctx context.Context, name, cacheDir string) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome{library: im.failed(name, fmt.Sprintf("Unexpected error: %v, %s", r, debug.Stack()))}
		}
	}()

	unit, err := im.Resolver.Resolve(ctx, name)
	if err != nil {
		return outcome{library: im.failed(name, failureMessage(err))}
	}

	entry, err := im.Freshness.IsCached(name, unit, cacheDir)
	if err != nil {
		return outcome{library: im.failed(name, failureMessage(err))}
	}
	if entry.Cached {
		return outcome{library: succeeded(name, entry.Path, unit.SourcePath), cached: true}
	}

	path, err := im.Generator.Generate(ctx, name, cacheDir)
	if err != nil {
		return outcome{library: im.failed(name, failureMessage(err))}
	}
	return outcome{library: succeeded(name, path, unit.SourcePath)}
}

// failed builds an error result, substituting a fallback artifact if one is
// configured for the library.
func (im *Importer) failed(name, message string) *libcache.Library {
	if path, ok := im.Fallbacks[name]; ok {
		return &libcache.Library{
			Name:          name,
			Status:        libcache.StatusSuccess,
			Fallback:      true,
			Message:       message,
			XMLLibdocPath: path,
		}
	}
	return &libcache.Library{
		Name:    name,
		Status:  libcache.StatusError,
		Message: message,
	}
}

func (im *Importer) environment(ctx context.Context) *libcache.Environment {
	if im.Interpreter == nil {
		return libcache.UnavailableEnvironment("")
	}
	env, err := im.Interpreter.Probe(ctx)
	if err != nil {
		return libcache.UnavailableEnvironment("")
	}
	return env
}

func succeeded(name, path, sourcePath string) *libcache.Library {
	return &libcache.Library{
		Name:          name,
		Status:        libcache.StatusSuccess,
		XMLLibdocPath: path,
		SourcePath:    sourcePath,
	}
}

// failureMessage returns the message of application errors and a full
// description of anything unexpected.
func failureMessage(err error) string {
	if libcache.ErrorCode(err) != libcache.EINTERNAL {
		return libcache.ErrorMessage(err)
	}
	return fmt.Sprintf("Unexpected error: %s", libcache.ErrorMessage(err))
}
