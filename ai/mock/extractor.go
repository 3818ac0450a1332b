package mock

import (
	"context"
	"strings"

	"github.com/poiesic/studykit/ai"
)

// MockExtractor is a test double for ai.TextExtractor.
// It allows custom behavior injection via function fields.
type MockExtractor struct {
	// ExtractTextFunc is called by ExtractText if set.
	// If nil, returns a fixed paragraph long enough to pass the minimum
	// extracted-text threshold.
	ExtractTextFunc func(ctx context.Context, doc ai.Document) (string, error)

	callCount int
}

// NewMockExtractor creates a mock extractor with default behavior.
func NewMockExtractor() *MockExtractor {
	return &MockExtractor{}
}

// ExtractText returns canned text unless a custom function is injected.
func (m *MockExtractor) ExtractText(ctx context.Context, doc ai.Document) (string, error) {
	m.callCount++

	if m.ExtractTextFunc != nil {
		return m.ExtractTextFunc(ctx, doc)
	}
	return strings.Repeat("Extracted document text. ", 10), nil
}

// CallCount returns the number of times ExtractText was called.
func (m *MockExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockExtractor) Reset() {
	m.callCount = 0
	m.ExtractTextFunc = nil
}
