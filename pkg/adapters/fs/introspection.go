package fs

import (
	"github.com/aretw0/introspection"
)

// SourceState exposes internal state for observability.
type SourceState struct {
	Path          string `json:"path"`
	Pattern       string `json:"pattern"`
	SystemDir     string `json:"system_dir"`
	Workers       int    `json:"workers"`
	CacheSize     int    `json:"cache_size"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return SourceState{
		Path:          r.Path,
		Pattern:       r.config.Pattern,
		SystemDir:     r.config.SystemDir,
		Workers:       r.config.Workers,
		CacheSize:     r.cache.Len(),
		WatcherActive: r.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-source"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
