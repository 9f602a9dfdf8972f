package ollama

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/electoralqa/candidex/ai"
	"github.com/electoralqa/candidex/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Generator implements ai.Generator using an Ollama chat model.
//
// Calls are synchronous and carry no client-side timeout; a hung server is
// only interrupted by context cancellation.
type Generator struct {
	client *ollama.LLM
	config *ai.Config
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := ollama.New(
		ollama.WithServerURL(config.Host),
		ollama.WithModel(config.GenerationModel),
		ollama.WithRunnerNumCtx(config.ContextWindow),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		config: config,
		logger: slog.Default().With("component", "ollama-generator"),
	}, nil
}

// NewGenerator creates a new generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Generate produces text for the prompt. A transport failure or an empty
// response from the model surfaces as core.ErrGenerationFailed.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating answer", "model", g.config.GenerationModel, "promptLength", len(prompt))

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := g.client.GenerateContent(ctx, content,
		llms.WithTemperature(g.config.Temperature),
		llms.WithTopP(g.config.TopP),
		llms.WithMaxTokens(g.config.MaxTokens),
		llms.WithStopWords(g.config.StopSequences),
		llms.WithRepetitionPenalty(g.config.RepetitionPenalty),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrGenerationFailed, err)
	}

	if len(response.Choices) < 1 || response.Choices[0].Content == "" {
		return "", fmt.Errorf("%w: empty response", core.ErrGenerationFailed)
	}

	return response.Choices[0].Content, nil
}
