package main

import (
	"fmt"
	"sort"

	"github.com/docbase/docbase"
)

// Run executes the changes command.
func (c *ChangesCmd) Run(deps *Dependencies) error {
	if c.Scan {
		return c.scan(deps)
	}

	if c.Stats {
		stats, err := deps.Changes.Stats(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
			return err
		}
		if len(stats) == 0 {
			fmt.Fprintln(deps.Stdout, "No changes recorded.")
			return nil
		}

		kinds := make([]string, 0, len(stats))
		for kind := range stats {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(deps.Stdout, "%s  %d\n", kind, stats[docbase.ChangeKind(kind)])
		}
		return nil
	}

	records, err := deps.Changes.Recent(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No changes recorded.")
		return nil
	}

	for _, r := range records {
		marker := " "
		if r.Processed {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s  %-8s  %s\n",
			marker, r.DetectedAt.Format("2006-01-02 15:04"), r.Kind, r.Origin)
	}

	return nil
}

// scan re-checks every stored origin for upstream changes. Changed origins
// land in the change log with a refreshed page cache, so the next ingest run
// reprocesses them.
func (c *ChangesCmd) scan(deps *Dependencies) error {
	origins, err := deps.Meta.Origins(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}
	if len(origins) == 0 {
		fmt.Fprintln(deps.Stdout, "No origins recorded. Run 'docbase ingest' first.")
		return nil
	}

	result, err := deps.Detector.ScanURLs(deps.Ctx, origins)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scanned %d origins: %d new, %d updated, %d unchanged, %d errored\n",
		len(origins), len(result.New), len(result.Updated), len(result.Unchanged), len(result.Errored))
	for _, origin := range result.Updated {
		fmt.Fprintf(deps.Stdout, "  updated  %s\n", origin)
	}
	for _, origin := range result.Errored {
		fmt.Fprintf(deps.Stdout, "  errored  %s\n", origin)
	}

	return nil
}
