// Package slog provides log/slog decorators for docdex capability
// interfaces, so the network boundaries can be observed without the core
// knowing about logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure LoggingSummarizer implements docdex.Summarizer at compile time.
var _ docdex.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with debug logging of call
// durations and failures.
type LoggingSummarizer struct {
	next   docdex.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next docdex.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the call.
func (s *LoggingSummarizer) Summarize(ctx context.Context, text string) (string, string, error) {
	begin := time.Now()
	terse, detailed, err := s.next.Summarize(ctx, text)
	s.log(ctx, "summarize", len(text), begin, err)
	return terse, detailed, err
}

// SummarizeSection delegates to the wrapped summarizer and logs the call.
func (s *LoggingSummarizer) SummarizeSection(ctx context.Context, text string) (string, error) {
	begin := time.Now()
	summary, err := s.next.SummarizeSection(ctx, text)
	s.log(ctx, "summarize section", len(text), begin, err)
	return summary, err
}

func (s *LoggingSummarizer) log(ctx context.Context, op string, inputLen int, begin time.Time, err error) {
	if err != nil {
		s.logger.ErrorContext(ctx, op,
			"input_bytes", inputLen,
			"duration", time.Since(begin),
			"error_code", docdex.ErrorCode(err),
		)
		return
	}
	s.logger.DebugContext(ctx, op,
		"input_bytes", inputLen,
		"duration", time.Since(begin),
	)
}
