package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docdex"
	"google.golang.org/genai"
)

// Ensure Ranker implements docdex.Ranker at compile time.
var _ docdex.Ranker = (*Ranker)(nil)

// Ranker implements docdex.Ranker using Google Gemini. It is the external
// candidate-selection capability the query core injects; the core never
// ranks anything itself.
type Ranker struct {
	client *genai.Client
	model  string
}

// NewRanker creates a new Ranker.
func NewRanker(client *genai.Client, model string) *Ranker {
	if model == "" {
		model = DefaultModel
	}
	return &Ranker{client: client, model: model}
}

// Rank asks the model to pick the entries most relevant to the query.
// Picks that name an unknown entry are dropped rather than surfaced.
func (r *Ranker) Rank(ctx context.Context, req docdex.RankRequest) (*docdex.RankResponse, error) {
	if req.Query == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "query required")
	}
	if len(req.Entries) == 0 {
		return nil, docdex.Errorf(docdex.EINVALID, "entries required")
	}
	maxPicks := req.MaxPicks
	if maxPicks <= 0 {
		maxPicks = 5
	}

	result, err := r.client.Models.GenerateContent(ctx, r.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildRankPrompt(req)}},
		}},
		BuildRankConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "gemini returned nil result")
	}

	picks, err := ParsePicks(result.Text())
	if err != nil {
		return nil, err
	}

	return &docdex.RankResponse{Picks: ValidatePicks(picks, req.Entries, maxPicks)}, nil
}

// BuildRankConfig returns the GenerateContentConfig for ranking calls.
func BuildRankConfig() *genai.GenerateContentConfig {
	temp := float32(0.0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You rank documentation index entries by relevance to a question. Respond with a JSON object of the form {\"picks\": [{\"collection\": \"...\", \"index\": 0}]}, most relevant first. Pick only entries that plausibly answer the question; fewer picks is better than irrelevant ones.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildRankPrompt builds the user prompt listing the candidate entries.
func BuildRankPrompt(req docdex.RankRequest) string {
	var sb strings.Builder
	sb.WriteString("<entries>\n")
	for _, e := range req.Entries {
		sb.WriteString("<entry>\n")
		fmt.Fprintf(&sb, "<collection>%s</collection>\n", e.Collection)
		fmt.Fprintf(&sb, "<index>%d</index>\n", e.Entry.Index)
		fmt.Fprintf(&sb, "<path>%s</path>\n", e.Entry.RelativePath)
		fmt.Fprintf(&sb, "<summary>%s</summary>\n", e.Entry.Summary)
		sb.WriteString("</entry>\n")
	}
	sb.WriteString("</entries>\n\n")
	fmt.Fprintf(&sb, "Question: %s\n", req.Query)
	fmt.Fprintf(&sb, "Pick at most %d entries.", req.MaxPicks)
	return sb.String()
}

// ParsePicks decodes the model's JSON reply.
func ParsePicks(raw string) ([]docdex.Pick, error) {
	var parsed struct {
		Picks []docdex.Pick `json:"picks"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return nil, docdex.Errorf(docdex.EINTERNAL, "gemini returned unparseable picks: %v", err)
	}
	return parsed.Picks, nil
}

// ValidatePicks drops picks that do not name a known entry, deduplicates,
// and caps the result at maxPicks.
func ValidatePicks(picks []docdex.Pick, entries []docdex.RankEntry, maxPicks int) []docdex.Pick {
	known := make(map[docdex.Pick]struct{}, len(entries))
	for _, e := range entries {
		known[docdex.Pick{Collection: e.Collection, Index: e.Entry.Index}] = struct{}{}
	}

	out := make([]docdex.Pick, 0, maxPicks)
	seen := make(map[docdex.Pick]struct{})
	for _, p := range picks {
		if len(out) == maxPicks {
			break
		}
		if _, ok := known[p]; !ok {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
