package mock

import "context"

// MockAnswerer is a test double for ai.Answerer.
// It allows custom behavior injection via function fields.
type MockAnswerer struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, returns a fixed answer string.
	GenerateAnswerFunc func(ctx context.Context, question, contextBlock string) (string, error)

	callCount int
}

// NewMockAnswerer creates a mock answerer with default behavior.
// Note: Returns concrete type to allow test assertions; the call count
// is how tests verify that no model call was made.
func NewMockAnswerer() *MockAnswerer {
	return &MockAnswerer{}
}

// GenerateAnswer returns a fixed answer unless a custom func is set.
func (m *MockAnswerer) GenerateAnswer(ctx context.Context, question, contextBlock string) (string, error) {
	m.callCount++

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, question, contextBlock)
	}

	return "Mock answer citing [1].", nil
}

// CallCount returns the number of times GenerateAnswer was called.
func (m *MockAnswerer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockAnswerer) Reset() {
	m.callCount = 0
	m.GenerateAnswerFunc = nil
}
