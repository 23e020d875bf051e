package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/libcache"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, libcache.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No import runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  ok=%d failed=%d  %s\n",
			r.ID,
			r.StartedAt.UTC().Format(time.DateTime),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
			r.Succeeded,
			r.Failed,
			strings.Join(r.Libraries, ","),
		)
	}

	return nil
}
