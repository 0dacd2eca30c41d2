package openai

import (
	"context"
	"log/slog"

	"github.com/chrismlittle123/finchly/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
type Embedder struct {
	embedder embeddings.Embedder // nil when the service is unconfigured
	maxChars int
	logger   *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Embedder{
		maxChars: config.EmbedMaxChars,
		logger:   slog.Default().With("component", "openai-embedder"),
	}

	if !config.EmbeddingConfigured() {
		return e, nil
	}

	opts := []openai.Option{
		openai.WithToken(tokenOrNone(config.EmbeddingAPIKey)),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	}
	if config.EmbeddingHost != "" {
		opts = append(opts, openai.WithBaseURL(config.EmbeddingHost))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}
	e.embedder = embedder

	return e, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
// Input is truncated to the configured bound before sending. Returns
// (nil, nil) when no embedding service is configured.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if e.embedder == nil {
		e.logger.Debug("no embedding service configured, skipping")
		return nil, nil
	}

	text = truncate(text, e.maxChars)
	e.logger.Debug("generating embedding for single text", "length", len(text))

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, err
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return nil, nil
	}

	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple texts in a batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if e.embedder == nil {
		e.logger.Debug("no embedding service configured, skipping")
		return nil, nil
	}

	truncated := make([]string, len(texts))
	for i, text := range texts {
		truncated[i] = truncate(text, e.maxChars)
	}
	e.logger.Debug("generating embeddings for texts", "count", len(truncated))

	vectors, err := e.embedder.EmbedDocuments(ctx, truncated)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(truncated), "err", err)
		return nil, err
	}

	return vectors, nil
}
