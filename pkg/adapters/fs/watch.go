package fs

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/peat/pkg/core"
)

// Watch implements core.Watchable. Events for files matching pattern are
// emitted on the returned channel until ctx is cancelled, at which point
// the worker drains and the channel closes.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = r.config.Pattern
	}

	events := make(chan core.Event, r.config.EventBuffer)

	w := newWatchWorker(r, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		_ = w.Stop(context.Background())
		close(events)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(fmt.Errorf("watch shutdown: %w", err))
		} else if r.config.Logger != nil {
			r.config.Logger.Error("watch shutdown", "error", err)
		}
	}))

	return events, nil
}
