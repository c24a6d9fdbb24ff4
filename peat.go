package peat

import (
	"log/slog"

	"github.com/aretw0/peat/internal/platform"
	"github.com/aretw0/peat/pkg/core"
)

// --- Types ---

// Post is a public alias for the domain post record.
type Post = core.Post

// Report is a public alias for the batch load report.
type Report = core.Report

// ParseError is a public alias for per-file parse failures.
type ParseError = core.ParseError

// Event is a public alias for watch events.
type Event = core.Event

// --- Errors ---

var (
	ErrMissingFrontMatter      = core.ErrMissingFrontMatter
	ErrUnterminatedFrontMatter = core.ErrUnterminatedFrontMatter
	ErrMalformedField          = core.ErrMalformedField
	ErrMissingRequiredField    = core.ErrMissingRequiredField
	ErrPostNotFound            = core.ErrPostNotFound
)

// --- Configuration ---

// Option defines a functional option for configuring peat.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSource allows injecting a custom post source.
func WithSource(source core.Source) Option {
	return platform.WithSource(source)
}

// WithPattern sets the glob selecting post files (default "**/*.md").
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithSystemDir allows specifying the hidden directory name (e.g. ".peat").
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithWorkers bounds the batch parse worker pool.
func WithWorkers(n int) Option {
	return platform.WithWorkers(n)
}

// WithEventBuffer allows specifying the size of the watch event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithMustExist controls whether the content directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithErrorHandler installs a callback for asynchronous errors.
func WithErrorHandler(handler func(error)) Option {
	return platform.WithErrorHandler(handler)
}

// --- Factory ---

// New creates a new peat Service over a content directory.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Open initializes a post source explicitly.
func Open(path string, opts ...Option) (core.Source, error) {
	return platform.Open(path, opts...)
}
