package gemini

import (
	"context"

	"github.com/fwojciec/docdex"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ docdex.TokenCounter = (*TokenCounter)(nil)

// TokenCounter reports Gemini token counts for text. Counting runs on a
// local tokenizer, so the query layer can price extracted bundles without
// an API round trip.
type TokenCounter struct {
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter builds a TokenCounter for model. It fails if no local
// tokenizer data exists for that model.
func NewTokenCounter(model string) (*TokenCounter, error) {
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{local: local}, nil
}

// CountTokens returns the token count of text, zero for empty text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	res, err := tc.local.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}
