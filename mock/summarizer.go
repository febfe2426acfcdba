// Package mock provides function-field fakes for docdex domain interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of docdex.Summarizer.
type Summarizer struct {
	SummarizeFn        func(ctx context.Context, text string) (string, string, error)
	SummarizeSectionFn func(ctx context.Context, text string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, string, error) {
	return s.SummarizeFn(ctx, text)
}

func (s *Summarizer) SummarizeSection(ctx context.Context, text string) (string, error) {
	return s.SummarizeSectionFn(ctx, text)
}
