package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("no LaTeX body returned by model")

// Generator sends ordered prompt parts to a language model and returns its
// text answer. Implementations return ErrEmptyResponse for blank answers.
type Generator interface {
	Generate(ctx context.Context, parts []string) (string, error)
	Model() string
}

// Config selects and configures a Generator.
type Config struct {
	Provider string // "gemini" or "openai"
	APIKey   string
	BaseURL  string // empty means the provider's public endpoint
	Model    string
}

// New builds the Generator for cfg.Provider. Call it once at startup and
// share the result.
func New(ctx context.Context, cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}

func checkText(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
