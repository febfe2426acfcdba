package query

import (
	"context"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/fs"
	"github.com/google/uuid"
)

// DefaultMaxPicks bounds ranker picks when the caller does not say.
const DefaultMaxPicks = 5

// Candidate pairs a resolved section entry with its collection root.
type Candidate struct {
	Collection string              `json:"collection"`
	Entry      docdex.SectionEntry `json:"entry"`
}

// SectionRef names one section window to extract.
type SectionRef struct {
	Collection   string `json:"collection"`
	RelativePath string `json:"relative_path"`
	Heading      string `json:"heading"`
	Offset       int    `json:"offset"`
	Limit        int    `json:"limit"`
}

// Bundle is one extracted slice of documentation text.
type Bundle struct {
	Collection   string `json:"collection"`
	RelativePath string `json:"relative_path"`
	Heading      string `json:"heading"`
	Offset       int    `json:"offset"`
	Limit        int    `json:"limit"`
	Text         string `json:"text"`
	Tokens       int    `json:"tokens,omitempty"`
}

// Session drives the retrieval stages. Stages are synchronous, read-only
// and side-effect-free on the index files; a session holds no state
// beyond its ID and the cache the caller gave it, so abandoning a
// session after any stage costs nothing.
type Session struct {
	id        string
	cache     *Cache
	scanner   *fs.Scanner
	loader    *fs.Loader
	resolver  *fs.Resolver
	extractor *fs.Extractor
	tokens    docdex.TokenCounter
}

// Option configures a Session.
type Option func(*Session)

// WithCache attaches a caller-owned cache of loaded indexes.
func WithCache(c *Cache) Option {
	return func(s *Session) { s.cache = c }
}

// WithTokenCounter makes Extract report token counts on bundles.
func WithTokenCounter(tc docdex.TokenCounter) Option {
	return func(s *Session) { s.tokens = tc }
}

// WithSampleSize sets the number of index lines a discovery preview reads.
func WithSampleSize(k int) Option {
	return func(s *Session) { s.scanner.SampleSize = k }
}

// NewSession creates a Session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:        uuid.NewString(),
		scanner:   &fs.Scanner{},
		loader:    &fs.Loader{},
		resolver:  &fs.Resolver{},
		extractor: &fs.Extractor{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// Discover finds collections under root and returns cheap previews.
func (s *Session) Discover(ctx context.Context, root string) ([]docdex.Preview, error) {
	return s.scanner.Discover(ctx, root)
}

// Load eagerly loads the full index of each named collection, through the
// session cache when one is attached. Entries come back tagged with their
// collection root, ready to hand to a Ranker.
func (s *Session) Load(ctx context.Context, roots ...string) ([]docdex.RankEntry, error) {
	var out []docdex.RankEntry
	for _, root := range roots {
		col := docdex.Collection{Root: root}

		var entries []docdex.IndexEntry
		if s.cache != nil {
			fingerprint, err := fingerprintIndex(col)
			if err != nil {
				return nil, err
			}
			cached, ok := s.cache.get(root, fingerprint)
			if ok {
				entries = cached
			} else {
				entries, err = s.loader.Load(ctx, col)
				if err != nil {
					return nil, err
				}
				s.cache.put(root, fingerprint, entries)
			}
		} else {
			var err error
			entries, err = s.loader.Load(ctx, col)
			if err != nil {
				return nil, err
			}
		}

		for _, entry := range entries {
			out = append(out, docdex.RankEntry{Collection: root, Entry: entry})
		}
	}
	return out, nil
}

// Resolve maps ranker picks to their section entries.
func (s *Session) Resolve(ctx context.Context, picks []docdex.Pick) ([]Candidate, error) {
	candidates := make([]Candidate, 0, len(picks))
	for _, pick := range picks {
		entry, err := s.resolver.Resolve(ctx, docdex.Collection{Root: pick.Collection}, pick.Index)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{Collection: pick.Collection, Entry: *entry})
	}
	return candidates, nil
}

// Extract reads the exact line window of each section reference and
// assembles text bundles.
func (s *Session) Extract(ctx context.Context, refs []SectionRef) ([]Bundle, error) {
	bundles := make([]Bundle, 0, len(refs))
	for _, ref := range refs {
		text, err := s.extractor.Extract(ctx, docdex.Collection{Root: ref.Collection}, ref.RelativePath, ref.Offset, ref.Limit)
		if err != nil {
			return nil, err
		}
		bundle := Bundle{
			Collection:   ref.Collection,
			RelativePath: ref.RelativePath,
			Heading:      ref.Heading,
			Offset:       ref.Offset,
			Limit:        ref.Limit,
			Text:         text,
		}
		if s.tokens != nil {
			if n, err := s.tokens.CountTokens(ctx, text); err == nil {
				bundle.Tokens = n
			}
		}
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

// Ask runs all five stages: discover collections under root, load them
// all, let the ranker pick entries, resolve the picks and extract every
// section of each candidate. Callers wanting to drop collections between
// stages drive the stages themselves instead.
func (s *Session) Ask(ctx context.Context, root, query string, ranker docdex.Ranker, maxPicks int) ([]Bundle, error) {
	if ranker == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "ranker required")
	}
	if query == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "query required")
	}
	if maxPicks <= 0 {
		maxPicks = DefaultMaxPicks
	}

	previews, err := s.Discover(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(previews) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no collections found under %q", root)
	}

	roots := make([]string, 0, len(previews))
	for _, p := range previews {
		roots = append(roots, p.Collection.Root)
	}

	entries, err := s.Load(ctx, roots...)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "collections under %q are empty", root)
	}

	resp, err := ranker.Rank(ctx, docdex.RankRequest{Query: query, Entries: entries, MaxPicks: maxPicks})
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Picks) == 0 {
		return nil, nil
	}
	picks := resp.Picks
	if len(picks) > maxPicks {
		picks = picks[:maxPicks]
	}

	candidates, err := s.Resolve(ctx, picks)
	if err != nil {
		return nil, err
	}

	var refs []SectionRef
	for _, c := range candidates {
		for _, sec := range c.Entry.Sections {
			refs = append(refs, SectionRef{
				Collection:   c.Collection,
				RelativePath: c.Entry.RelativePath,
				Heading:      sec.Heading,
				Offset:       sec.Offset,
				Limit:        sec.Limit,
			})
		}
	}

	return s.Extract(ctx, refs)
}
