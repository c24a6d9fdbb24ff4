// Package platform wires the core domain to its adapters.
package platform

import (
	"context"

	"github.com/aretw0/peat/pkg/adapters/fs"
	"github.com/aretw0/peat/pkg/core"
)

// New creates a Service over the content directory at path.
func New(path string, opts ...Option) (*core.Service, error) {
	source, o, err := open(path, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(source, o.eventBufferSize), nil
}

// Open initializes and returns the post source directly, for callers that
// want the adapter without the service layer.
func Open(path string, opts ...Option) (core.Source, error) {
	source, _, err := open(path, opts...)
	return source, err
}

func open(path string, opts ...Option) (core.Source, *options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.source != nil {
		return o.source, o, nil
	}

	repo := fs.NewRepository(fs.Config{
		Path:         path,
		Pattern:      o.pattern,
		Workers:      o.workers,
		MustExist:    o.mustExist,
		SystemDir:    o.systemDir,
		EventBuffer:  o.eventBufferSize,
		Logger:       o.logger,
		ErrorHandler: o.errorHandler,
	})

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, nil, err
	}

	return repo, o, nil
}
