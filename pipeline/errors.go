package pipeline

import (
	"errors"
	"fmt"
)

// Code identifies a failure class surfaced to the caller.
type Code string

// Failure taxonomy. None of these are retried server-side.
const (
	CodeMissingParameter   Code = "missing_parameter"
	CodeUnauthorized       Code = "unauthorized"
	CodeDownloadFailed     Code = "download_failed"
	CodeAllProvidersFailed Code = "all_providers_failed"
	CodeExtractionFailed   Code = "extraction_failed"
	CodeParseFailed        Code = "parse_failed"
	CodeInternal           Code = "internal"
)

// Error is a pipeline failure with its taxonomy code.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// fail wraps err with a taxonomy code.
func fail(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

func failf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...)}
}

// CodeOf extracts the taxonomy code from err. Errors produced outside the
// pipeline map to CodeInternal.
func CodeOf(err error) Code {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return CodeInternal
}
