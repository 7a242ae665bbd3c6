package generate

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI calls an OpenAI-compatible chat completions endpoint (OpenAI,
// Cerebras and the like). Each prompt part is sent as its own user message.
type OpenAI struct {
	client openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if model == "" {
		return nil, errors.New("openai model is required")
	}
	// Retries are handled by Retrying so both providers back off the same way.
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{client: openai.NewClient(opts...), model: model}, nil
}

func (o *OpenAI) Model() string { return o.model }

func (o *OpenAI) Generate(ctx context.Context, parts []string) (string, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(parts))
	for _, p := range parts {
		msgs = append(msgs, openai.UserMessage(p))
	}

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", classify(err))
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return checkText(resp.Choices[0].Message.Content)
}
