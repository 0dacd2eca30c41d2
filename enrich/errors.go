package enrich

import "errors"

var (
	// ErrRepositoryRequired indicates that no link repository was provided.
	ErrRepositoryRequired = errors.New("link repository is required")

	// ErrProviderRequired indicates that no AI provider was provided.
	ErrProviderRequired = errors.New("AI provider is required")

	// ErrExtractorsRequired indicates that no extractor set was provided.
	ErrExtractorsRequired = errors.New("extractor set is required")
)
