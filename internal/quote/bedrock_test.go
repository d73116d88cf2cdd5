package quote

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBedrock struct {
	input *bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeBedrock) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestBedrockGenerator_Generate(t *testing.T) {
	fake := &fakeBedrock{body: `{"content":[{"type":"text","text":"Stay"},{"type":"text","text":"curious."}]}`}
	g := NewBedrockGenerator(fake, "anthropic.claude-3-haiku")

	got, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "'Stay curious.'", got)

	in := fake.input
	require.NotNil(t, in)
	assert.Equal(t, "anthropic.claude-3-haiku", aws.ToString(in.ModelId))
	assert.Equal(t, "application/json", aws.ToString(in.ContentType))
	assert.Equal(t, "application/json", aws.ToString(in.Accept))

	var req map[string]any
	require.NoError(t, json.Unmarshal(in.Body, &req))
	assert.Equal(t, "bedrock-2023-05-31", req["anthropic_version"])
	assert.Equal(t, 150.0, req["max_tokens"])
	assert.Equal(t, 0.9, req["temperature"])
	assert.Equal(t, 0.9, req["top_p"])

	msgs, ok := req["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, Prompt, msg["content"])
}

func TestBedrockGenerator_Generate_TrimsWhitespace(t *testing.T) {
	fake := &fakeBedrock{body: `{"content":[{"type":"text","text":"  Courage grows with every step.\n"}]}`}

	got, err := NewBedrockGenerator(fake, "m").Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "'Courage grows with every step.'", got)
}

func TestBedrockGenerator_Generate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeBedrock
		wantErr error
	}{
		{"transport error", &fakeBedrock{err: errors.New("dial tcp: timeout")}, nil},
		{"not json", &fakeBedrock{body: "<html>"}, ErrMalformedResponse},
		{"missing content", &fakeBedrock{body: `{"id":"x"}`}, ErrMalformedResponse},
		{"fragment without text", &fakeBedrock{body: `{"content":[{"type":"image"}]}`}, ErrMalformedResponse},
		{"empty content", &fakeBedrock{body: `{"content":[]}`}, ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBedrockGenerator(tt.fake, "m").Generate(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBedrockGenerator_Attribution(t *testing.T) {
	assert.Equal(t, "Amazon Bedrock", NewBedrockGenerator(nil, "m").Attribution())
}
