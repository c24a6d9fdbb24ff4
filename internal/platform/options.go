package platform

import (
	"log/slog"

	"github.com/aretw0/peat/pkg/core"
)

// options holds the internal configuration for the peat service.
type options struct {
	source          core.Source
	logger          *slog.Logger
	pattern         string
	systemDir       string
	workers         int
	eventBufferSize int
	mustExist       bool
	errorHandler    func(error)
}

// Option defines a functional option for configuring peat.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		mustExist:       true,
		eventBufferSize: 16,
	}
}

// WithLogger sets the logger for the service and source.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource allows injecting a custom post source.
func WithSource(source core.Source) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithPattern sets the glob selecting post files (default "**/*.md").
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithSystemDir sets the hidden directory name for the index cache
// (default ".peat").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithWorkers bounds the batch parse pool.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithEventBuffer sets the size of the watch event channel.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBufferSize = size
	}
}

// WithMustExist controls whether the content directory must already exist.
// It does by default: peat reads collections, it does not author them.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithErrorHandler installs a callback for asynchronous errors (watcher).
func WithErrorHandler(handler func(error)) Option {
	return func(o *options) {
		o.errorHandler = handler
	}
}
