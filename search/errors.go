package search

import "errors"

var (
	// ErrRepositoryRequired indicates that no link repository was provided.
	ErrRepositoryRequired = errors.New("link repository is required")

	// ErrAIProviderRequired indicates that no AI provider was provided.
	ErrAIProviderRequired = errors.New("AI provider is required")

	// ErrEmbeddingUnavailable indicates the query could not be embedded,
	// typically because no embedding service is configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
