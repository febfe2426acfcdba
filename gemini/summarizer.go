// Package gemini implements docdex capability interfaces using Google
// Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/docdex"
	"google.golang.org/genai"
)

// DefaultModel is used when the caller does not name one.
const DefaultModel = "gemini-2.5-flash"

// Ensure Summarizer implements docdex.Summarizer at compile time.
var _ docdex.Summarizer = (*Summarizer)(nil)

// Summarizer implements docdex.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client, model string) *Summarizer {
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

	raw, err := s.generate(ctx, BuildSummarizePrompt(text), BuildSummarizeConfig())
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

	raw, err := s.generate(ctx, BuildSectionPrompt(text), BuildSectionConfig())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (s *Summarizer) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docdex.Errorf(docdex.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// BuildSummarizeConfig returns the GenerateContentConfig for file summaries.
func BuildSummarizeConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You summarize software documentation files for a search index. Respond with a JSON object holding two fields: \"summary\", a terse keyword-dense summary of 150 to 250 characters, and \"detailed_summary\", a few sentences covering what the file documents. Base both strictly on the provided text.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildSectionConfig returns the GenerateContentConfig for section summaries.
func BuildSectionConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You summarize one section of a documentation file in a single terse sentence. Respond with the sentence only.",
			}},
		},
		Temperature: &temp,
	}
}

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
		return "", "", docdex.Errorf(docdex.EINTERNAL, "gemini returned unparseable summary: %v", err)
	}
	if parsed.Summary == "" || parsed.DetailedSummary == "" {
		return "", "", docdex.Errorf(docdex.EINTERNAL, "gemini summary response missing fields")
	}
	return parsed.Summary, parsed.DetailedSummary, nil
}

// stripCodeFence removes a surrounding markdown code fence, which models
// add even when asked for bare JSON.
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
