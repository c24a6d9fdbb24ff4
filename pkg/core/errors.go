package core

import (
	"errors"
	"fmt"
)

// Parse failure taxonomy. Every failed parse wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	// ErrMissingFrontMatter means the document does not begin with a
	// front-matter delimiter line.
	ErrMissingFrontMatter = errors.New("missing front matter")

	// ErrUnterminatedFrontMatter means an opening delimiter was found but
	// no closing delimiter follows before end of input.
	ErrUnterminatedFrontMatter = errors.New("unterminated front matter")

	// ErrMalformedField means a line inside the front-matter block is not
	// a recognized key/value pair or list item.
	ErrMalformedField = errors.New("malformed front matter field")

	// ErrMissingRequiredField means layout or title is absent after parsing.
	ErrMissingRequiredField = errors.New("missing required field")
)

// ErrPostNotFound is returned when a slug resolves to no file.
var ErrPostNotFound = errors.New("post not found")

// ParseError reports a failed parse of a single content file.
// It is local and recoverable at batch level: one malformed file never
// halts processing of the rest.
type ParseError struct {
	// Source identifies the offending file.
	Source string
	// Reason is a human-readable description of what went wrong.
	Reason string
	// Err is one of the sentinel parse errors above.
	Err error
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError builds a ParseError for source wrapping the sentinel err.
func NewParseError(source string, err error, reason string) *ParseError {
	return &ParseError{Source: source, Err: err, Reason: reason}
}
