// Copyright 2025 The Finchly Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package finchly

import (
	"log/slog"

	"github.com/chrismlittle123/finchly/ai"
	"github.com/chrismlittle123/finchly/ai/openai"
	"github.com/chrismlittle123/finchly/enrich"
	"github.com/chrismlittle123/finchly/extract"
	"github.com/chrismlittle123/finchly/search"
	"github.com/chrismlittle123/finchly/storage"
	"github.com/chrismlittle123/finchly/storage/badger"
)

// Service wires together storage, models, and extractors. It is the
// composition root used by the CLI and by embedders of the library.
type Service struct {
	backend  *badger.Backend
	linkRepo storage.LinkRepository
	provider ai.AIProvider
	logger   *slog.Logger

	aiConfig      *ai.Config
	extractConfig *extract.Config
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig      *ai.Config
	extractConfig *extract.Config
}

// WithAIConfig sets the model service configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithExtractConfig sets the extractor configuration.
func WithExtractConfig(config *extract.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.extractConfig = config
	}
}

// NewService opens the database at filePath and builds the service.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig:      ai.DefaultConfig(),
		extractConfig: extract.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	linkRepo := badger.NewLinkRepository(backend)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		linkRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:       backend,
		linkRepo:      linkRepo,
		provider:      provider,
		logger:        slog.Default(),
		aiConfig:      options.aiConfig,
		extractConfig: options.extractConfig,
	}, nil
}

// Close releases the model provider and storage.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.linkRepo.Close(); err != nil {
		s.logger.Error("error closing link repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// LinkRepository returns the link store.
func (s *Service) LinkRepository() storage.LinkRepository {
	return s.linkRepo
}

// Provider returns the model services.
func (s *Service) Provider() ai.AIProvider {
	return s.provider
}

// NewPipeline builds an enrichment pipeline over the service's
// repository, provider, and extractors.
func (s *Service) NewPipeline(opts ...enrich.Option) (*enrich.Pipeline, error) {
	return enrich.NewPipeline(s.linkRepo, s.provider, extract.NewSet(s.extractConfig), opts...)
}

// NewSearcher builds a semantic searcher over the service's repository.
func (s *Service) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(s.linkRepo, s.provider, opts...)
}

// NewRAG builds a grounded answerer over a fresh searcher.
func (s *Service) NewRAG() (*search.RAG, error) {
	searcher, err := s.NewSearcher()
	if err != nil {
		return nil, err
	}
	return search.NewRAG(searcher, s.provider)
}
