package main

import (
	"fmt"

	"github.com/docbase/docbase"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	passages, err := deps.Searcher.Search(deps.Ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	if len(passages) == 0 {
		fmt.Fprintf(deps.Stderr, "error: nothing indexed matches the question. Run 'docbase ingest %s' first.\n", c.Profile)
		return docbase.Errorf(docbase.ENOTFOUND, "no passages found for question")
	}

	answer, err := deps.Answerer.Answer(deps.Ctx, c.Question, passages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbase.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
