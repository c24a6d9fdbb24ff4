package core

import "context"

// Source defines the contract for loading posts from storage.
// Adhering to this interface keeps the core independent of the underlying
// medium (filesystem, archive, object store).
type Source interface {
	// Load retrieves a single post by its slug.
	Load(ctx context.Context, slug string) (Post, error)

	// LoadAll parses every post file reachable from the source.
	// Parse failures are collected in the report, not returned as an
	// error: one malformed file never hides the valid ones.
	LoadAll(ctx context.Context) (Report, error)
}

// Indexer is implemented by sources that can serve metadata-only listings
// cheaply (e.g. from an mtime index) without loading bodies.
type Indexer interface {
	// ListMeta returns every post with its body omitted.
	ListMeta(ctx context.Context) ([]Post, error)
}

// Watchable is implemented by sources that can observe file changes.
type Watchable interface {
	// Watch emits an event for every change to a file matching pattern.
	// The channel closes when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Report aggregates the outcome of a batch load.
type Report struct {
	// Posts holds every successfully parsed record, sorted by date
	// descending then slug.
	Posts []Post
	// Failures holds one entry per file that failed to parse.
	Failures []*ParseError
}

// OK reports whether the batch completed without a single failure.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}
