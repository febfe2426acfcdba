package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
)

// Run executes the collections command.
func (c *CollectionsCmd) Run(deps *Dependencies) error {
	previews, err := deps.Session.Discover(deps.Ctx, c.Root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if len(previews) == 0 {
		fmt.Fprintln(deps.Stdout, "No collections found. Use 'docdex build' to index one.")
		return nil
	}

	for _, p := range previews {
		fmt.Fprintf(deps.Stdout, "%s  (%d files)\n", p.Collection.Root, p.Total)
		for _, e := range p.Sample {
			fmt.Fprintf(deps.Stdout, "  %d  %s  %s\n", e.Index, e.RelativePath, e.Summary)
		}
	}

	return nil
}
