package docdex

import "context"

// RankEntry pairs an index entry with the root of the collection it was
// loaded from, so picks can be resolved back to the right collection.
type RankEntry struct {
	Collection string     `json:"collection"`
	Entry      IndexEntry `json:"entry"`
}

// Pick identifies one entry chosen by a Ranker.
type Pick struct {
	Collection string `json:"collection"`
	Index      int    `json:"index"`
}

// RankRequest carries a query and the candidate entries to rank.
type RankRequest struct {
	Query    string      `json:"query"`
	Entries  []RankEntry `json:"entries"`
	MaxPicks int         `json:"maxPicks"`
}

// RankResponse carries the picks, most relevant first. Implementations
// must return at most MaxPicks picks.
type RankResponse struct {
	Picks []Pick `json:"picks"`
}

// Ranker selects the entries most relevant to a query. Ranking is an
// external capability (typically an LLM); the core never implements it,
// it only consumes picks through this interface.
type Ranker interface {
	Rank(ctx context.Context, req RankRequest) (*RankResponse, error)
}
