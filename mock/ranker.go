package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Ranker = (*Ranker)(nil)

// Ranker is a mock implementation of docdex.Ranker.
type Ranker struct {
	RankFn func(ctx context.Context, req docdex.RankRequest) (*docdex.RankResponse, error)
}

func (r *Ranker) Rank(ctx context.Context, req docdex.RankRequest) (*docdex.RankResponse, error) {
	return r.RankFn(ctx, req)
}
