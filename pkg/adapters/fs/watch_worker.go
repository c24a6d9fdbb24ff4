package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/peat/pkg/core"
)

type watchWorker struct {
	*worker.BaseWorker
	repo      *Repository
	pattern   string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(repo *Repository, pattern string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		repo:       repo,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.repo.recursiveAdd(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.repo.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// processFilesystemEvent handles filtering, mapping, and debouncing of
// filesystem events. Returns true if the event was accepted.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) (processed bool) {
	if w.repo.config.Logger != nil {
		w.repo.config.Logger.Debug("event received", "name", event.Name)
	}

	// New directories join the watch set instead of producing an event.
	if event.Has(fsnotify.Create) {
		if added := w.repo.maybeWatchDir(w.watcher, event.Name); added {
			return false
		}
	}

	if w.repo.shouldIgnore(event, w.pattern) {
		return false
	}

	eType := w.repo.mapEventType(event)
	if eType == "" {
		return false
	}

	slug, err := w.repo.resolveSlug(event.Name)
	if err != nil {
		if w.repo.config.ErrorHandler != nil {
			w.repo.config.ErrorHandler(fmt.Errorf("failed to resolve slug for %s: %w", event.Name, err))
		} else if w.repo.config.Logger != nil {
			w.repo.config.Logger.Debug("resolveSlug failed", "path", event.Name, "err", err)
		}
		return false
	}

	w.sendEvent(ctx, core.Event{
		Type:      eType,
		Slug:      slug,
		Timestamp: time.Now().Unix(),
	})

	return true
}

// sendEvent enqueues an event via the debouncer, protecting against channel
// closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			// Recover from panic if channel was closed (worker stopping)
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// handleWatcherError processes errors from the fsnotify watcher.
func (w *watchWorker) handleWatcherError(err error) (shouldContinue bool) {
	if w.repo.config.Logger != nil {
		w.repo.config.Logger.Error("fsnotify error", "error", err)
	}
	if w.repo.config.ErrorHandler != nil {
		w.repo.config.ErrorHandler(err)
	}
	return true
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)

			var stack string
			if w.repo.config.Logger != nil && w.repo.config.Logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}

			if w.repo.config.Logger != nil {
				if stack != "" {
					w.repo.config.Logger.Error("watcher panic", "error", panicErr, "stack", stack)
				} else {
					w.repo.config.Logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Shutdown debouncer: stop accepting new events and wait for all
	// in-flight timers before the caller closes the events channel.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

// mainEventLoop is the core select loop processing filesystem events.
func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}

// --- Repository watch helpers ---

// recursiveAdd registers the content root and every non-system subdirectory
// with the watcher.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != r.Path && (name == r.config.SystemDir || name == ".git" || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// maybeWatchDir adds newly created directories to the watch set.
// Returns true if the path was a directory.
func (r *Repository) maybeWatchDir(watcher *fsnotify.Watcher, path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	name := filepath.Base(path)
	if name == r.config.SystemDir || name == ".git" || strings.HasPrefix(name, ".") {
		return true
	}
	_ = watcher.Add(path)
	return true
}

// shouldIgnore filters out system paths, temp files, and files outside the
// watch pattern.
func (r *Repository) shouldIgnore(event fsnotify.Event, pattern string) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, TempFilePrefix) {
		return true
	}

	relPath, err := filepath.Rel(r.Path, event.Name)
	if err != nil {
		return true
	}
	relPath = filepath.ToSlash(relPath)

	for _, part := range strings.Split(relPath, "/") {
		if part == r.config.SystemDir || part == ".git" {
			return true
		}
	}

	match, err := doublestar.Match(pattern, relPath)
	if err != nil || !match {
		return true
	}
	return false
}

// mapEventType converts fsnotify operations into domain event types.
func (r *Repository) mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// resolveSlug derives the slug for an absolute file path. Slugs come from
// the filename alone, so deleted files still resolve.
func (r *Repository) resolveSlug(path string) (string, error) {
	relPath, err := filepath.Rel(r.Path, path)
	if err != nil {
		return "", err
	}
	slug, _ := parseFilename(filepath.ToSlash(relPath))
	return slug, nil
}
