package mock

import (
	"context"
)

// MockGenerator is a test double for ai.TextGenerator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFromTextFunc is called by GenerateFromText if set.
	// If nil, returns a minimal valid study-set JSON document.
	GenerateFromTextFunc func(ctx context.Context, text, prompt string) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default behavior.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateFromText returns canned study-set JSON unless a custom function
// is injected.
func (m *MockGenerator) GenerateFromText(ctx context.Context, text, prompt string) (string, error) {
	m.callCount++

	if m.GenerateFromTextFunc != nil {
		return m.GenerateFromTextFunc(ctx, text, prompt)
	}
	return DefaultStudySetJSON, nil
}

// CallCount returns the number of times GenerateFromText was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.GenerateFromTextFunc = nil
}
