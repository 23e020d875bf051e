package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/libcache"
	libfs "github.com/fwojciec/libcache/fs"
)

// Run executes the keywords command.
func (c *KeywordsCmd) Run(deps *Dependencies) error {
	cacheDir := c.CacheDir
	if cacheDir == "" {
		cacheDir = deps.Config.CacheDir
	}
	if cacheDir == "" {
		err := libcache.Errorf(libcache.EINVALID, "cache directory required: use --cache-dir or set cacheDir in the config file")
		fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(err))
		return err
	}

	path := libfs.ArtifactPath(cacheDir, c.Name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		err = libcache.Errorf(libcache.ENOTFOUND, "no libdoc file for %q in %s. Use 'libcache import' first.", c.Name, cacheDir)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(err))
		return err
	}
	defer f.Close()

	doc, err := deps.Parser.ParseLibdoc(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s: %s\n", path, libcache.ErrorMessage(err))
		return err
	}

	header := doc.Name
	if doc.Version != "" {
		header += " " + doc.Version
	}
	fmt.Fprintf(deps.Stdout, "%s (%d keywords)\n", header, len(doc.Keywords))
	for _, kw := range doc.Keywords {
		fmt.Fprintf(deps.Stdout, "%d:%d  %s", kw.Line, kw.Column, kw.Name)
		if len(kw.Args) > 0 {
			fmt.Fprintf(deps.Stdout, "  %s", strings.Join(kw.Args, ", "))
		}
		fmt.Fprintln(deps.Stdout)
	}
	return nil
}
