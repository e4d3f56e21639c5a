package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/acadsearch/acadsearch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer implements ai.Completer using OpenAI-compatible completion APIs.
type Completer struct {
	llm         llms.Model
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.APIKey
	if token == "" {
		token = "none"
	}

	llm, err := openai.New(
		openai.WithBaseURL(config.CompletionHost),
		openai.WithToken(token),
		openai.WithModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		llm:         llm,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		logger:      slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends the prompt to the model and returns the generated text,
// trimmed of surrounding whitespace.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug("generating completion", "prompt_length", len(prompt))

	result, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		c.logger.Error("failed to generate completion", "err", err)
		return "", err
	}

	return strings.TrimSpace(result), nil
}
