package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fwojciec/libcache"
	"github.com/fwojciec/libcache/importer"
)

// Run executes the import command. On success exactly one JSON line is
// written to stdout.
func (c *ImportCmd) Run(deps *Dependencies) error {
	names := splitList(c.Names)

	startedAt := time.Now().UTC()
	result, err := c.importLibraries(deps, names)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", libcache.ErrorMessage(err))
		return err
	}
	finishedAt := time.Now().UTC()

	if !c.NoRecord && deps.Libraries != nil {
		c.record(deps, names, result, startedAt, finishedAt)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}

// importLibraries runs the pipeline with process stdout silenced.
func (c *ImportCmd) importLibraries(deps *Dependencies, names []string) (*libcache.Result, error) {
	if deps.SilenceStdout != nil {
		restore := deps.SilenceStdout()
		defer restore()
	}

	return deps.Importer.Import(deps.Ctx, names, c.CacheDir, func(e importer.ProgressEvent) {
		switch e.Type {
		case importer.ProgressCompleted:
			deps.Logger.Debug("imported",
				"name", e.Name,
				"cached", e.Cached,
				"fallback", e.Library.Fallback,
				"progress", fmt.Sprintf("%d/%d", e.Index+1, e.Total),
			)
		case importer.ProgressFailed:
			deps.Logger.Debug("import failed",
				"name", e.Name,
				"message", e.Library.Message,
				"progress", fmt.Sprintf("%d/%d", e.Index+1, e.Total),
			)
		}
	})
}

// record stores the run in the repository. Recording failures are logged and
// never affect the JSON result.
func (c *ImportCmd) record(deps *Dependencies, names []string, result *libcache.Result, startedAt, finishedAt time.Time) {
	libs := make([]*libcache.Library, 0, len(result.Libraries))
	for _, lib := range result.Libraries {
		rec := *lib
		if rec.Status == libcache.StatusSuccess && deps.Checksum != nil {
			hash, err := deps.Checksum(rec.XMLLibdocPath)
			if err != nil {
				deps.Logger.Warn("checksum failed", "name", rec.Name, "err", err)
			}
			rec.ArtifactHash = hash
		}
		libs = append(libs, &rec)
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].Name < libs[j].Name })

	if _, err := deps.Libraries.AppendLibraries(deps.Ctx, libs); err != nil {
		deps.Logger.Warn("failed to record libraries", "err", err)
	}

	if deps.Runs == nil {
		return
	}
	succeeded, failed := result.Counts()
	run := &libcache.Run{
		Libraries:  names,
		CacheDir:   c.CacheDir,
		Succeeded:  succeeded,
		Failed:     failed,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		deps.Logger.Warn("failed to record run", "err", err)
	}
}
