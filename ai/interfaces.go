package ai

import "context"

// Document is a downloaded source file handed to a multimodal provider.
type Document struct {
	// FileName is the client-supplied name, used for MIME detection.
	FileName string

	// MIMEType is the detected content type, e.g. "application/pdf".
	MIMEType string

	// Data is the raw file content.
	Data []byte
}

// DocumentAnalyzer generates study artifacts directly from document bytes
// via a multimodal model. Implementations must be thread-safe.
type DocumentAnalyzer interface {
	// AnalyzeDocument submits the document inline together with the
	// instruction prompt and returns the raw model output. Returns
	// ErrUnsupportedFormat when the document cannot be submitted inline,
	// and ErrNoOutput when every configured model produced nothing usable.
	AnalyzeDocument(ctx context.Context, doc Document, prompt string) (string, error)
}

// TextGenerator generates study artifacts from extracted plain text.
// Implementations must be thread-safe.
type TextGenerator interface {
	// GenerateFromText submits text together with the instruction prompt,
	// requesting structured JSON output, and returns the raw model output.
	GenerateFromText(ctx context.Context, text, prompt string) (string, error)
}

// TextExtractor extracts plain text from a document, typically via an
// external parsing service. Implementations must be thread-safe.
type TextExtractor interface {
	// ExtractText returns the document's plain text. Implementations fail
	// rather than return partial text.
	ExtractText(ctx context.Context, doc Document) (string, error)
}
