package docdex

import "context"

// Summarizer produces the summaries stored in the index files. It is the
// only network boundary at build time; implementations may call an LLM API.
type Summarizer interface {
	// Summarize produces a terse, keyword-dense summary (150-250
	// characters) and a longer detailed summary of a whole file.
	Summarize(ctx context.Context, text string) (terse, detailed string, err error)

	// SummarizeSection produces a short summary of a single section.
	SummarizeSection(ctx context.Context, text string) (string, error)
}
