package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure LoggingRanker implements docdex.Ranker at compile time.
var _ docdex.Ranker = (*LoggingRanker)(nil)

// LoggingRanker wraps a Ranker with logging of entry counts, pick counts
// and durations.
type LoggingRanker struct {
	next   docdex.Ranker
	logger *slog.Logger
}

// NewLoggingRanker creates a new LoggingRanker.
func NewLoggingRanker(next docdex.Ranker, logger *slog.Logger) *LoggingRanker {
	return &LoggingRanker{next: next, logger: logger}
}

// Rank delegates to the wrapped ranker and logs the call.
func (r *LoggingRanker) Rank(ctx context.Context, req docdex.RankRequest) (*docdex.RankResponse, error) {
	begin := time.Now()
	resp, err := r.next.Rank(ctx, req)
	if err != nil {
		r.logger.ErrorContext(ctx, "rank",
			"entries", len(req.Entries),
			"duration", time.Since(begin),
			"error_code", docdex.ErrorCode(err),
		)
		return nil, err
	}
	picks := 0
	if resp != nil {
		picks = len(resp.Picks)
	}
	r.logger.InfoContext(ctx, "rank",
		"entries", len(req.Entries),
		"picks", picks,
		"duration", time.Since(begin),
	)
	return resp, nil
}
