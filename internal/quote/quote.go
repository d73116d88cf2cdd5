// Package quote produces the inspirational quote embedded in acknowledgments.
package quote

import (
	"context"
	"errors"
	"strings"

	"github.com/contactrelay/contactrelay/internal/model"
)

// Prompt asks the model for a bare quote with no preamble.
const Prompt = `Generate a unique, original, and thought-provoking inspirational quote about life, success, or personal growth.

Important:
1. Provide ONLY the quote text.
2. Do not include any introductory phrases or explanations.
3. The quote should be inspirational and universally applicable.
4. Begin your response with the quote directly, without any preamble.

Now, provide an original inspirational quote:`

// Fallback is used whenever generation fails.
const Fallback = "'Believe in yourself and all that you are.'"

// Sampling parameters shared by every provider.
const (
	MaxTokens   = 150
	Temperature = 0.9
	TopP        = 0.9
)

var (
	// ErrEmptyContent is returned when the model produced no text.
	ErrEmptyContent = errors.New("model returned no content")
	// ErrMalformedResponse is returned when the response does not have the expected shape.
	ErrMalformedResponse = errors.New("malformed model response")
)

// Generator requests one quote from a hosted model.
type Generator interface {
	// Generate returns the formatted quote, already wrapped in quote marks.
	Generate(ctx context.Context) (string, error)
	// Attribution names the service for the acknowledgment footer.
	Attribution() string
}

// Format joins fragments with single spaces, trims the result and wraps it
// in single quotes.
func Format(fragments []string) (string, error) {
	text := strings.TrimSpace(strings.Join(fragments, " "))
	if text == "" {
		return "", ErrEmptyContent
	}
	return "'" + text + "'", nil
}

// Resolve always yields a usable quote. When generation fails the fallback
// is returned together with the generation error.
func Resolve(ctx context.Context, gen Generator) (model.GeneratedQuote, error) {
	text, err := gen.Generate(ctx)
	if err == nil && text == "" {
		err = ErrEmptyContent
	}
	if err != nil {
		return model.GeneratedQuote{Text: Fallback, Source: model.QuoteSourceFallback}, err
	}
	return model.GeneratedQuote{Text: text, Source: model.QuoteSourceGenerated}, nil
}
