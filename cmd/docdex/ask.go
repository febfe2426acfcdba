package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	bundles, err := deps.Session.Ask(deps.Ctx, c.Root, c.Question, deps.Ranker, c.MaxPicks)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if len(bundles) == 0 {
		fmt.Fprintln(deps.Stdout, "No relevant documentation found.")
		return nil
	}

	tokens := 0
	for _, b := range bundles {
		fmt.Fprintf(deps.Stdout, "== %s %s (%s, lines %d-%d)\n",
			b.Collection, b.RelativePath, b.Heading, b.Offset, b.Offset+b.Limit-1)
		fmt.Fprint(deps.Stdout, b.Text)
		fmt.Fprintln(deps.Stdout)
		tokens += b.Tokens
	}
	if tokens > 0 {
		fmt.Fprintf(deps.Stderr, "~%d tokens across %d sections\n", tokens, len(bundles))
	}

	return nil
}
