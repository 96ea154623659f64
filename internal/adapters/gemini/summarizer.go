// Package gemini calls the Gemini API to turn pre-aggregated quote facts
// into a natural-language analysis.
package gemini

import (
	"context"
	"fmt"

	portsproviders "github.com/ktraore/devis_manager_app/internal/core/ports/providers"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Summarizer is the Gemini-backed implementation of the summarizer port.
type Summarizer struct {
	client *genai.Client
	model  string
}

// Ensure implementation matches interface
var _ portsproviders.Summarizer = (*Summarizer)(nil)

// NewSummarizer creates a Gemini client. An empty model selects the
// default; an empty API key is an error because every later call would
// fail anyway.
func NewSummarizer(ctx context.Context, apiKey, model string) (*Summarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Summarizer{client: client, model: model}, nil
}

// Summarize sends the instruction followed by the serialized fact sheets
// and returns the model's markdown text.
func (s *Summarizer) Summarize(ctx context.Context, payload string, instruction string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nDonnées des devis :\n%s", instruction, payload)
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}
