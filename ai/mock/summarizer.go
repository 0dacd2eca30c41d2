package mock

import (
	"context"

	"github.com/chrismlittle123/finchly/core"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, returns a fixed summary with a single valid tag.
	SummarizeFunc func(ctx context.Context, content string) (*core.SummaryResult, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns a deterministic summary unless a custom func is set.
func (m *MockSummarizer) Summarize(ctx context.Context, content string) (*core.SummaryResult, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, content)
	}

	return &core.SummaryResult{
		Summary: "Mock summary of the content.",
		Tags:    []string{"tool"},
	}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}
