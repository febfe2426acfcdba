// Package openai implements docdex.Summarizer using the OpenAI API, as an
// alternative backend to gemini.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docdex"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when the caller does not name one.
const DefaultModel = "gpt-4o-mini"

// Ensure Summarizer implements docdex.Summarizer at compile time.
var _ docdex.Summarizer = (*Summarizer)(nil)

// Summarizer implements docdex.Summarizer using OpenAI chat completions.
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *openai.Client, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{client: client, model: model}
}

// Summarize produces the terse and detailed summaries for one file.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, string, error) {
	if strings.TrimSpace(text) == "" {
		return "", "", docdex.Errorf(docdex.EINVALID, "text required")
	}

	raw, err := s.complete(ctx, SummarizeSystemPrompt, BuildSummarizePrompt(text))
	if err != nil {
		return "", "", err
	}
	return ParseSummary(raw)
}

// SummarizeSection produces a short summary of a single section.
func (s *Summarizer) SummarizeSection(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", docdex.Errorf(docdex.EINVALID, "text required")
	}

	raw, err := s.complete(ctx, SectionSystemPrompt, BuildSectionPrompt(text))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (s *Summarizer) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", docdex.Errorf(docdex.EINTERNAL, "openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// System prompts for the two summarization modes.
const (
	SummarizeSystemPrompt = "You summarize software documentation files for a search index. Respond with a JSON object holding two fields: \"summary\", a terse keyword-dense summary of 150 to 250 characters, and \"detailed_summary\", a few sentences covering what the file documents. Base both strictly on the provided text."
	SectionSystemPrompt   = "You summarize one section of a documentation file in a single terse sentence. Respond with the sentence only."
)

// BuildSummarizePrompt builds the user prompt for file summaries.
func BuildSummarizePrompt(text string) string {
	return fmt.Sprintf("<file>\n%s\n</file>\n\nSummarize this documentation file.", text)
}

// BuildSectionPrompt builds the user prompt for section summaries.
func BuildSectionPrompt(text string) string {
	return fmt.Sprintf("<section>\n%s\n</section>\n\nSummarize this section.", text)
}

// ParseSummary decodes the model's JSON reply into the two summaries.
func ParseSummary(raw string) (string, string, error) {
	var parsed struct {
		Summary         string `json:"summary"`
		DetailedSummary string `json:"detailed_summary"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		return "", "", docdex.Errorf(docdex.EINTERNAL, "openai returned unparseable summary: %v", err)
	}
	if parsed.Summary == "" || parsed.DetailedSummary == "" {
		return "", "", docdex.Errorf(docdex.EINTERNAL, "openai summary response missing fields")
	}
	return parsed.Summary, parsed.DetailedSummary, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
