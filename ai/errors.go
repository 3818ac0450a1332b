package ai

import "errors"

var (
	// ErrUnsupportedFormat indicates a document cannot be submitted inline
	// to a multimodal model.
	ErrUnsupportedFormat = errors.New("document format not supported for inline analysis")

	// ErrNoOutput indicates every configured model was tried and none
	// produced usable output.
	ErrNoOutput = errors.New("no model produced output")

	// ErrNoJSONObject indicates a model response contained no JSON object.
	ErrNoJSONObject = errors.New("no JSON object in model response")
)
