package main

import (
	"fmt"

	"github.com/fwojciec/libcache"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter libcache.LibraryFilter
	if c.Status != "" {
		status := libcache.Status(c.Status)
		if status != libcache.StatusPending && status != libcache.StatusSuccess && status != libcache.StatusError {
			err := libcache.Errorf(libcache.EINVALID, "unknown status %q", c.Status)
			fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(err))
			return err
		}
		filter.Status = &status
	}

	libs, err := deps.Libraries.FindLibraries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(err))
		return err
	}

	if len(libs) == 0 {
		fmt.Fprintln(deps.Stdout, "No libraries recorded. Use 'libcache import' to import some.")
		return nil
	}

	for _, lib := range libs {
		fmt.Fprintf(deps.Stdout, "%s  %s", lib.Name, lib.Status)
		if lib.Fallback {
			fmt.Fprint(deps.Stdout, " (fallback)")
		}
		if lib.XMLLibdocPath != "" {
			fmt.Fprintf(deps.Stdout, "  %s", lib.XMLLibdocPath)
		}
		if lib.Message != "" {
			fmt.Fprintf(deps.Stdout, "  %s", firstLine(lib.Message))
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}

// firstLine returns s up to the first newline.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
