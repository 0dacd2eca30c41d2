package ai

import (
	"context"

	"github.com/chrismlittle123/finchly/core"
)

// Summarizer derives a short summary and taxonomy-constrained tags from
// extracted content. Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize sends content to a language model and returns a summary
	// plus tags filtered to the fixed taxonomy. Returns (nil, nil) when
	// no model is configured or the model response cannot be parsed;
	// summarization is an optional enhancement, not a required stage.
	Summarize(ctx context.Context, content string) (*core.SummaryResult, error)
}

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns (nil, nil) when no embedding service is configured.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Answerer generates a grounded answer to a question from a prepared
// context block. Implementations must be thread-safe for concurrent use.
type Answerer interface {
	// GenerateAnswer asks a language model to answer strictly from the
	// supplied context, citing sources by bracket number.
	GenerateAnswer(ctx context.Context, question, contextBlock string) (string, error)
}

// AIProvider aggregates the model services for convenient initialization
// and lifecycle management.
type AIProvider interface {
	// Summarizer returns the summary/tag service.
	Summarizer() Summarizer

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Answerer returns the grounded answer service.
	Answerer() Answerer

	// Close releases resources held by the provider and its services.
	Close() error
}
