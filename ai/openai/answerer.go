package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chrismlittle123/finchly/ai"
	"github.com/tmc/langchaingo/llms"
)

// Answerer implements ai.Answerer using OpenAI-compatible chat APIs.
// It tries the configured model list in order until one succeeds.
type Answerer struct {
	client llms.Model // nil when the LLM service is unconfigured
	models []string   // primary model followed by fallbacks
	logger *slog.Logger
}

// newAnswerer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newAnswerer(config *ai.Config) (*Answerer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	a := &Answerer{
		models: append([]string{config.LLMModel}, config.FallbackModels...),
		logger: slog.Default().With("component", "openai-answerer"),
	}

	if !config.LLMConfigured() {
		return a, nil
	}

	client, err := newChatClient(config)
	if err != nil {
		return nil, err
	}
	a.client = client

	return a, nil
}

// NewAnswerer creates a new answerer using the provided configuration.
//
// Returns ai.Answerer interface to enforce abstraction.
func NewAnswerer(config *ai.Config) (ai.Answerer, error) {
	return newAnswerer(config)
}

// GenerateAnswer asks the model to answer strictly from the supplied
// context block. Unlike summarization, answer generation is a required
// dependency of its caller, so an unconfigured service is an error.
func (a *Answerer) GenerateAnswer(ctx context.Context, question, contextBlock string) (string, error) {
	if a.client == nil {
		return "", ai.ErrAnswerModelNotConfigured
	}

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(answerSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildAnswerPrompt(question, contextBlock)),
			},
		},
	}

	var lastErr error
	for _, model := range a.models {
		response, err := a.client.GenerateContent(ctx, messages,
			llms.WithModel(model), llms.WithMaxTokens(1024))
		if err != nil {
			a.logger.Warn("answer generation failed, trying next model",
				"model", model, "err", err)
			lastErr = err
			continue
		}
		if len(response.Choices) < 1 {
			lastErr = fmt.Errorf("model %s returned no choices", model)
			continue
		}
		return response.Choices[0].Content, nil
	}

	return "", fmt.Errorf("all answer models failed: %w", lastErr)
}
