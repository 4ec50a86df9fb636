package services

import (
	"errors"
	"fmt"
)

// ErrNoFile is returned when a request carries no file part.
var ErrNoFile = errors.New("No file uploaded")

// InputError reports a caller mistake: a malformed skills part, an
// unsupported file type or an oversized upload.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// ExtractionError reports that no usable text could be read from a document.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// InferenceError wraps a failed model call. Its message is surfaced to the
// caller unchanged.
type InferenceError struct {
	Provider string
	Err      error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s inference failed: %v", e.Provider, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// ParseError reports a completion that could not be decoded as JSON after
// sanitizing.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response as JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a decoded completion that lacks a required field
// or has one of the wrong shape.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid model response: %s %s", e.Field, e.Msg)
}
