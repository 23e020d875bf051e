package main

import (
	"fmt"

	"github.com/fwojciec/libcache"
)

// Run executes the delete command. Cached libdoc files are left in place.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return libcache.Errorf(libcache.EINVALID, "use --force to confirm deletion")
	}

	lib, err := deps.Libraries.FindLibraryByName(deps.Ctx, c.Name)
	if libcache.ErrorCode(err) == libcache.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: library %q not found. Use 'libcache list' to see recorded libraries.\n", c.Name)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(err))
		return err
	}

	if err := deps.Libraries.DeleteLibrary(deps.Ctx, lib.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted library %q\n", lib.Name)
	return nil
}
