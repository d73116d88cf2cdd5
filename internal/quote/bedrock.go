package quote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// AnthropicVersion is the messages API version Bedrock expects for Claude models.
const AnthropicVersion = "bedrock-2023-05-31"

// InvokeModelAPI is the subset of the Bedrock runtime client used here.
type InvokeModelAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type bedrockMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type bedrockRequest struct {
	AnthropicVersion string           `json:"anthropic_version"`
	Messages         []bedrockMessage `json:"messages"`
	MaxTokens        int              `json:"max_tokens"`
	Temperature      float64          `json:"temperature"`
	TopP             float64          `json:"top_p"`
}

type bedrockResponse struct {
	Content []struct {
		Type string  `json:"type"`
		Text *string `json:"text"`
	} `json:"content"`
}

// BedrockGenerator generates quotes with a Bedrock-hosted Anthropic model.
type BedrockGenerator struct {
	client  InvokeModelAPI
	modelID string
}

// NewBedrockGenerator wraps an existing Bedrock runtime client.
func NewBedrockGenerator(client InvokeModelAPI, modelID string) *BedrockGenerator {
	return &BedrockGenerator{client: client, modelID: modelID}
}

// NewBedrockGeneratorForRegion builds a Bedrock runtime client for region
// from a shared AWS config.
func NewBedrockGeneratorForRegion(cfg aws.Config, region, modelID string) *BedrockGenerator {
	client := bedrockruntime.NewFromConfig(cfg, func(o *bedrockruntime.Options) {
		o.Region = region
	})
	return NewBedrockGenerator(client, modelID)
}

// Attribution implements Generator.
func (g *BedrockGenerator) Attribution() string {
	return "Amazon Bedrock"
}

// RequestBody returns the JSON body sent to InvokeModel.
func RequestBody() ([]byte, error) {
	return json.Marshal(bedrockRequest{
		AnthropicVersion: AnthropicVersion,
		Messages:         []bedrockMessage{{Role: "user", Content: Prompt}},
		MaxTokens:        MaxTokens,
		Temperature:      Temperature,
		TopP:             TopP,
	})
}

// Generate implements Generator with a single InvokeModel call.
func (g *BedrockGenerator) Generate(ctx context.Context) (string, error) {
	body, err := RequestBody()
	if err != nil {
		return "", fmt.Errorf("encode bedrock request: %w", err)
	}

	out, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke model: %w", err)
	}

	return parseBedrockResponse(out.Body)
}

func parseBedrockResponse(body []byte) (string, error) {
	var resp bedrockResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Content == nil {
		return "", fmt.Errorf("%w: missing content", ErrMalformedResponse)
	}

	fragments := make([]string, 0, len(resp.Content))
	for i, item := range resp.Content {
		if item.Text == nil {
			return "", fmt.Errorf("%w: content[%d] has no text", ErrMalformedResponse, i)
		}
		fragments = append(fragments, *item.Text)
	}
	return Format(fragments)
}
