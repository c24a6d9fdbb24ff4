package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// indexEntry holds the front-matter snapshot for a single post file.
// The body is never cached; entries exist to resolve slugs to paths and to
// serve metadata-only listings without re-parsing unchanged files.
type indexEntry struct {
	Slug         string    `json:"slug"`
	Title        string    `json:"title,omitempty"`
	Layout       string    `json:"layout,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Date         time.Time `json:"date,omitempty"`
	LastModified time.Time `json:"lastModified"`
}

// index represents the persistent cache state.
type index struct {
	Version int                    `json:"version"`
	Entries map[string]*indexEntry `json:"entries"` // Key is relative path (e.g. "posts/2023-01-01-foo.md")
	dirty   bool
	mu      sync.RWMutex
}

// cache manages the loading, updating, and saving of the index.
type cache struct {
	Path  string // Path to .peat/index.json
	index *index
}

// newCache initializes a cache under {contentDir}/{systemDir}/index.json.
func newCache(contentDir, systemDir string) *cache {
	return &cache{
		Path: filepath.Join(contentDir, systemDir, "index.json"),
		index: &index{
			Version: 1,
			Entries: make(map[string]*indexEntry),
		},
	}
}

// Load reads the cache from disk. A missing or corrupted file yields an
// empty index so the cache self-heals on the next Save.
func (c *cache) Load() error {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	data, err := os.ReadFile(c.Path)
	if os.IsNotExist(err) {
		return nil // Start fresh
	}
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, c.index); err != nil {
		c.index.Entries = make(map[string]*indexEntry)
		return nil
	}
	if c.index.Entries == nil {
		c.index.Entries = make(map[string]*indexEntry)
	}

	c.index.dirty = false
	return nil
}

// Save persists the cache to disk if it's dirty.
func (c *cache) Save() error {
	c.index.mu.RLock()
	if !c.index.dirty {
		c.index.mu.RUnlock()
		return nil
	}
	data, err := json.MarshalIndent(c.index, "", "  ")
	c.index.mu.RUnlock()

	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return err
	}

	if err := WriteFileAtomic(c.Path, data, 0644); err != nil {
		return err
	}

	c.index.mu.Lock()
	c.index.dirty = false
	c.index.mu.Unlock()

	return nil
}

// Get retrieves an entry if it exists and matches the current mtime.
func (c *cache) Get(relPath string, currentMtime time.Time) (*indexEntry, bool) {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()

	entry, ok := c.index.Entries[relPath]
	if !ok {
		return nil, false
	}
	if !entry.LastModified.Equal(currentMtime) {
		return nil, false
	}
	return entry, true
}

// Set updates an entry in the cache.
func (c *cache) Set(relPath string, entry *indexEntry) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	c.index.Entries[relPath] = entry
	c.index.dirty = true
}

// Prune removes entries that are not in the 'keep' set.
func (c *cache) Prune(keep map[string]bool) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	for path := range c.index.Entries {
		if !keep[path] {
			delete(c.index.Entries, path)
			c.index.dirty = true
		}
	}
}

// Delete removes a single entry from the cache.
func (c *cache) Delete(relPath string) {
	c.index.mu.Lock()
	defer c.index.mu.Unlock()

	delete(c.index.Entries, relPath)
	c.index.dirty = true
}

// ResolveSlug returns the relative path whose cached entry carries slug.
func (c *cache) ResolveSlug(slug string) (string, bool) {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()

	for relPath, entry := range c.index.Entries {
		if entry.Slug == slug {
			return relPath, true
		}
	}
	return "", false
}

// Len returns the number of entries in the cache.
func (c *cache) Len() int {
	c.index.mu.RLock()
	defer c.index.mu.RUnlock()
	return len(c.index.Entries)
}
