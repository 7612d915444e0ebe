package main

import (
	"fmt"
	"strings"

	"github.com/docbase/docbase"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Searcher.Search(deps.Ctx, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results.")
		return nil
	}

	for i, r := range results {
		source := r.Metadata["source"]
		if source == "" {
			source = r.ChunkID
		}
		fmt.Fprintf(deps.Stdout, "%d. %s\n", i+1, source)
		if category := r.Metadata["category"]; category != "" {
			fmt.Fprintf(deps.Stdout, "   category: %s\n", category)
		}
		fmt.Fprintf(deps.Stdout, "   %s\n", snippet(r.Text, 160))
	}

	return nil
}

// snippet returns the first line of text, truncated to max bytes.
func snippet(text string, max int) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	if len(text) > max {
		text = text[:max] + "..."
	}
	return text
}
