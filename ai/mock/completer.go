package mock

import (
	"context"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns a canned response.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	callCount int
}

// NewMockCompleter creates a mock completer with a canned default response.
// Note: Returns concrete type to allow test assertions via GetMockCompleter().
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete returns an injected or canned completion for the prompt.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.callCount++

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}

	return "resposta gerada para teste", nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and any injected behavior.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.CompleteFunc = nil
}
