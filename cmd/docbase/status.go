package main

import (
	"fmt"

	"github.com/docbase/docbase"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	snap, err := deps.Tasks.Status(c.TaskID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	printSnapshot(deps.Stdout, snap)
	return nil
}

// Run executes the cancel command.
func (c *CancelCmd) Run(deps *Dependencies) error {
	if !deps.Tasks.Cancel(c.TaskID) {
		fmt.Fprintf(deps.Stderr, "error: task %q is not cancellable\n", c.TaskID)
		return docbase.Errorf(docbase.EINVALID, "task %q is not cancellable", c.TaskID)
	}

	fmt.Fprintf(deps.Stdout, "Cancellation requested for task %s.\n", c.TaskID)
	return nil
}
