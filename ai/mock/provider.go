package mock

import "github.com/chrismlittle123/finchly/ai"

// MockProvider aggregates the mock services as an ai.AIProvider.
type MockProvider struct {
	summarizer *MockSummarizer
	embedder   *MockEmbedder
	answerer   *MockAnswerer
}

// NewMockProvider creates a provider wired with fresh mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		summarizer: NewMockSummarizer(),
		embedder:   NewMockEmbedder(),
		answerer:   NewMockAnswerer(),
	}
}

var _ ai.AIProvider = (*MockProvider)(nil)

// Summarizer returns the mock summarizer as the interface type.
func (p *MockProvider) Summarizer() ai.Summarizer {
	return p.summarizer
}

// Embedder returns the mock embedder as the interface type.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Answerer returns the mock answerer as the interface type.
func (p *MockProvider) Answerer() ai.Answerer {
	return p.answerer
}

// Close is a no-op for mocks.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockSummarizer returns the concrete mock for test assertions.
func (p *MockProvider) GetMockSummarizer() *MockSummarizer {
	return p.summarizer
}

// GetMockEmbedder returns the concrete mock for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockAnswerer returns the concrete mock for test assertions.
func (p *MockProvider) GetMockAnswerer() *MockAnswerer {
	return p.answerer
}
