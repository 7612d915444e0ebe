package main

import (
	"fmt"
	"io"

	"github.com/docbase/docbase"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	taskID, err := deps.Tasks.Start(deps.Ctx, c.Profile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Task %s started for profile %q.\n", taskID, c.Profile)

	if c.Detach || deps.Waiter == nil {
		return nil
	}

	snap, err := deps.Waiter.Wait(deps.Ctx, taskID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	printSnapshot(deps.Stdout, snap)

	if snap.State == docbase.TaskFailed {
		return docbase.Errorf(docbase.EINTERNAL, "ingestion failed")
	}
	return nil
}

// printSnapshot writes a human-readable task summary.
func printSnapshot(w io.Writer, snap *docbase.TaskSnapshot) {
	fmt.Fprintf(w, "Task %s: %s (%.0f%%)\n", snap.ID, snap.State, snap.Progress*100)
	fmt.Fprintf(w, "  files:  %d/%d\n", snap.ProcessedFiles, snap.TotalFiles)
	fmt.Fprintf(w, "  chunks: %d/%d\n", snap.IndexedChunks, snap.TotalChunks)
	if snap.CurrentItem != "" && !snap.State.Terminal() {
		fmt.Fprintf(w, "  current: %s\n", snap.CurrentItem)
	}
	for _, warning := range snap.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
	for _, errMsg := range snap.Errors {
		fmt.Fprintf(w, "  error: %s\n", errMsg)
	}
}
