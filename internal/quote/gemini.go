package quote

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GenerateContentAPI is the subset of genai.Models used here.
type GenerateContentAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator generates quotes with Google Gemini.
type GeminiGenerator struct {
	models GenerateContentAPI
	model  string
}

// NewGeminiGenerator wraps an existing models client.
func NewGeminiGenerator(models GenerateContentAPI, model string) *GeminiGenerator {
	return &GeminiGenerator{models: models, model: model}
}

// NewGeminiGeneratorWithKey builds a Gemini API client.
func NewGeminiGeneratorWithKey(ctx context.Context, apiKey, model string, httpClient *http.Client) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewGeminiGenerator(client.Models, model), nil
}

// Attribution implements Generator.
func (g *GeminiGenerator) Attribution() string {
	return "Google Gemini"
}

// Generate implements Generator with a single GenerateContent call.
func (g *GeminiGenerator) Generate(ctx context.Context) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model,
		genai.Text(Prompt),
		&genai.GenerateContentConfig{
			MaxOutputTokens: MaxTokens,
			Temperature:     genai.Ptr[float32](Temperature),
			TopP:            genai.Ptr[float32](TopP),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	var fragments []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		fragments = append(fragments, part.Text)
	}
	return Format(fragments)
}
