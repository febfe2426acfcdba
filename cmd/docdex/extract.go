package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/query"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	refs := []query.SectionRef{{
		Collection:   c.Root,
		RelativePath: c.RelativePath,
		Offset:       c.Offset,
		Limit:        c.Limit,
	}}

	bundles, err := deps.Session.Extract(deps.Ctx, refs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, bundles[0].Text)
	return nil
}
