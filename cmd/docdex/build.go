package main

import (
	"fmt"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/build"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	progress := func(event build.ProgressEvent) {
		switch event.Type {
		case build.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Indexing %d files\n", event.Total)
		case build.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.RelativePath, docdex.ErrorMessage(event.Error))
		case build.ProgressFinished:
			// Summary printed after the rebuild completes
		}
	}

	result, err := deps.Builder.Build(deps.Ctx, c.Root, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return &ExitError{Code: 2, Err: err}
	}

	if result.Indexed == 0 && result.Failed == 0 {
		fmt.Fprintf(deps.Stderr, "no markdown files found under %s\n", c.Root)
		return &ExitError{Code: 2, Err: docdex.Errorf(docdex.ENOTFOUND, "no markdown files found under %s", c.Root)}
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d files (%s, %s)\n",
		result.Indexed, build.FormatBytes(result.Bytes), build.FormatTokens(result.Tokens))

	if result.Failed > 0 {
		fmt.Fprintf(deps.Stderr, "%d files failed:\n", result.Failed)
		for _, fe := range result.Errors {
			fmt.Fprintf(deps.Stderr, "  %s: %s\n", fe.RelativePath, docdex.ErrorMessage(fe.Err))
		}
		return &ExitError{Code: 1, Err: docdex.Errorf(docdex.EINTERNAL, "%d of %d files failed", result.Failed, result.Indexed+result.Failed)}
	}

	return nil
}
