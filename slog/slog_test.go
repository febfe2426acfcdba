package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/mock"
	docdexslog "github.com/fwojciec/docdex/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingSummarizer_DelegatesAndLogs(t *testing.T) {
	t.Parallel()

	next := &mock.Summarizer{
		SummarizeFn: func(context.Context, string) (string, string, error) {
			return "terse", "detailed", nil
		},
		SummarizeSectionFn: func(context.Context, string) (string, error) {
			return "section", nil
		},
	}

	var buf bytes.Buffer
	s := docdexslog.NewLoggingSummarizer(next, newLogger(&buf))

	terse, detailed, err := s.Summarize(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "terse", terse)
	assert.Equal(t, "detailed", detailed)

	summary, err := s.SummarizeSection(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "section", summary)

	assert.Contains(t, buf.String(), "summarize")
	assert.Contains(t, buf.String(), "duration")
}

func TestLoggingSummarizer_LogsErrorCode(t *testing.T) {
	t.Parallel()

	next := &mock.Summarizer{
		SummarizeFn: func(context.Context, string) (string, string, error) {
			return "", "", docdex.Errorf(docdex.ETIMEOUT, "too slow")
		},
	}

	var buf bytes.Buffer
	s := docdexslog.NewLoggingSummarizer(next, newLogger(&buf))

	_, _, err := s.Summarize(context.Background(), "text")

	require.Error(t, err)
	assert.Contains(t, buf.String(), docdex.ETIMEOUT)
}

func TestLoggingRanker_DelegatesAndLogs(t *testing.T) {
	t.Parallel()

	next := &mock.Ranker{
		RankFn: func(context.Context, docdex.RankRequest) (*docdex.RankResponse, error) {
			return &docdex.RankResponse{Picks: []docdex.Pick{{Collection: "c", Index: 0}}}, nil
		},
	}

	var buf bytes.Buffer
	r := docdexslog.NewLoggingRanker(next, newLogger(&buf))

	resp, err := r.Rank(context.Background(), docdex.RankRequest{Query: "q"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Contains(t, buf.String(), "picks=1")
}
