package fs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache(t *testing.T) {
	t.Run("Set Save Load Get", func(t *testing.T) {
		dir := t.TempDir()
		mtime := time.Now().Truncate(time.Second)

		c := newCache(dir, ".peat")
		c.Set("2023-01-01-a.md", &indexEntry{
			Slug:         "a",
			Title:        "A",
			Tags:         []string{"x"},
			LastModified: mtime,
		})
		if err := c.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		c2 := newCache(dir, ".peat")
		if err := c2.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		entry, hit := c2.Get("2023-01-01-a.md", mtime)
		if !hit {
			t.Fatal("expected cache hit")
		}
		if entry.Slug != "a" || entry.Title != "A" {
			t.Errorf("entry mismatch: %+v", entry)
		}
	})

	t.Run("Stale Mtime Misses", func(t *testing.T) {
		c := newCache(t.TempDir(), ".peat")
		mtime := time.Now()
		c.Set("a.md", &indexEntry{Slug: "a", LastModified: mtime})

		if _, hit := c.Get("a.md", mtime.Add(time.Second)); hit {
			t.Error("expected miss for changed mtime")
		}
	})

	t.Run("Prune", func(t *testing.T) {
		c := newCache(t.TempDir(), ".peat")
		c.Set("keep.md", &indexEntry{Slug: "keep"})
		c.Set("drop.md", &indexEntry{Slug: "drop"})

		c.Prune(map[string]bool{"keep.md": true})

		if c.Len() != 1 {
			t.Errorf("expected 1 entry after prune, got %d", c.Len())
		}
		if _, ok := c.ResolveSlug("drop"); ok {
			t.Error("pruned entry still resolvable")
		}
	})

	t.Run("Corrupted Cache Self-Heals", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, ".peat"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, ".peat", "index.json"), []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		c := newCache(dir, ".peat")
		if err := c.Load(); err != nil {
			t.Fatalf("Load should self-heal, got %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected empty cache, got %d entries", c.Len())
		}
	})

	t.Run("ResolveSlug", func(t *testing.T) {
		c := newCache(t.TempDir(), ".peat")
		c.Set("2023-01-01-a.md", &indexEntry{Slug: "a"})

		relPath, ok := c.ResolveSlug("a")
		if !ok || relPath != "2023-01-01-a.md" {
			t.Errorf("ResolveSlug mismatch: %q %v", relPath, ok)
		}
		if _, ok := c.ResolveSlug("missing"); ok {
			t.Error("unexpected resolution")
		}
	})
}
