package search

import (
	"context"
	"log/slog"

	"github.com/chrismlittle123/finchly/ai"
	"github.com/chrismlittle123/finchly/core"
	"github.com/chrismlittle123/finchly/storage"
)

// Searcher provides semantic search over saved links.
type Searcher struct {
	repository storage.LinkRepository
	embedder   ai.Embedder
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	repository storage.LinkRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		repository: repository,
		embedder:   provider.Embedder(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search embeds the query and returns links whose embedding scores
// strictly above threshold, ranked by similarity, up to limit results.
// Unlike enrichment, retrieval cannot degrade: a missing embedding
// service is an error.
func (s *Searcher) Search(ctx context.Context, query string, limit int, threshold float32) ([]*core.RetrievalMatch, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error embedding query", "query", query, "err", err)
		return nil, err
	}
	if vector == nil {
		return nil, ErrEmbeddingUnavailable
	}

	matches, err := s.repository.FindSimilar(ctx, vector, threshold, limit)
	if err != nil {
		s.logger.Error("error querying for similar links", "err", err)
		return nil, err
	}

	s.logger.Debug("search complete", "query", query, "matches", len(matches))
	return matches, nil
}
