package mock

import (
	"context"

	"github.com/poiesic/studykit/ai"
)

// MockAnalyzer is a test double for ai.DocumentAnalyzer.
// It allows custom behavior injection via function fields.
type MockAnalyzer struct {
	// AnalyzeDocumentFunc is called by AnalyzeDocument if set.
	// If nil, returns a minimal valid study-set JSON document.
	AnalyzeDocumentFunc func(ctx context.Context, doc ai.Document, prompt string) (string, error)

	callCount int
}

// NewMockAnalyzer creates a mock analyzer with default behavior.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// AnalyzeDocument returns canned study-set JSON unless a custom function is
// injected.
func (m *MockAnalyzer) AnalyzeDocument(ctx context.Context, doc ai.Document, prompt string) (string, error) {
	m.callCount++

	if m.AnalyzeDocumentFunc != nil {
		return m.AnalyzeDocumentFunc(ctx, doc, prompt)
	}
	return DefaultStudySetJSON, nil
}

// CallCount returns the number of times AnalyzeDocument was called.
func (m *MockAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockAnalyzer) Reset() {
	m.callCount = 0
	m.AnalyzeDocumentFunc = nil
}
