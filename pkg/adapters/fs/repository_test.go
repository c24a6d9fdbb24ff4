package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/peat/pkg/core"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}
}

func TestLoadAll(t *testing.T) {
	t.Run("Failure Isolation", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "2023-01-10-alpha.md", "---\nlayout: post\ntitle: Alpha\n---\nA")
		writeFixture(t, dir, "2023-01-20-beta.md", "---\nlayout: post\ntitle: Beta\n---\nB")
		writeFixture(t, dir, "2023-01-15-broken.md", "no front matter at all")

		repo := NewRepository(Config{Path: dir, MustExist: true})
		report, err := repo.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if len(report.Posts) != 2 {
			t.Fatalf("expected 2 posts, got %d", len(report.Posts))
		}
		if len(report.Failures) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(report.Failures))
		}

		failure := report.Failures[0]
		if failure.Source != "2023-01-15-broken.md" {
			t.Errorf("failure source mismatch: %s", failure.Source)
		}
		if !errors.Is(failure, core.ErrMissingFrontMatter) {
			t.Errorf("expected ErrMissingFrontMatter, got %v", failure.Err)
		}
	})

	t.Run("Sorted By Date Descending", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "2022-06-01-old.md", "---\nlayout: post\ntitle: Old\n---\nx")
		writeFixture(t, dir, "2024-06-01-new.md", "---\nlayout: post\ntitle: New\n---\nx")
		writeFixture(t, dir, "undated.md", "---\nlayout: post\ntitle: Undated\n---\nx")

		repo := NewRepository(Config{Path: dir, MustExist: true})
		report, err := repo.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if len(report.Posts) != 3 {
			t.Fatalf("expected 3 posts, got %d", len(report.Posts))
		}
		if report.Posts[0].Slug != "new" || report.Posts[1].Slug != "old" || report.Posts[2].Slug != "undated" {
			t.Errorf("unexpected order: %s, %s, %s", report.Posts[0].Slug, report.Posts[1].Slug, report.Posts[2].Slug)
		}
	})

	t.Run("Filename Convention", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "2023-05-07-hello-world.md", "---\nlayout: post\ntitle: Hello\n---\nhi")

		repo := NewRepository(Config{Path: dir, MustExist: true})
		report, err := repo.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
		if len(report.Posts) != 1 {
			t.Fatalf("expected 1 post, got %d", len(report.Posts))
		}

		post := report.Posts[0]
		if post.Slug != "hello-world" {
			t.Errorf("slug mismatch: %s", post.Slug)
		}
		want := time.Date(2023, 5, 7, 0, 0, 0, 0, time.UTC)
		if !post.Date.Equal(want) {
			t.Errorf("date mismatch: %v", post.Date)
		}
		if post.Source != "2023-05-07-hello-world.md" {
			t.Errorf("source mismatch: %s", post.Source)
		}
	})

	t.Run("Pattern And System Dir Filtering", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "posts/2023-01-01-inside.md", "---\nlayout: post\ntitle: In\n---\nx")
		writeFixture(t, dir, "2023-01-02-outside.md", "---\nlayout: post\ntitle: Out\n---\nx")
		writeFixture(t, dir, "notes.txt", "not markdown")
		writeFixture(t, dir, ".peat/index.json", "{}")

		repo := NewRepository(Config{Path: dir, Pattern: "posts/**/*.md", MustExist: true})
		report, err := repo.LoadAll(context.Background())
		if err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
		if len(report.Posts) != 1 || report.Posts[0].Slug != "inside" {
			t.Fatalf("pattern filtering failed: %+v", report.Posts)
		}
		if len(report.Failures) != 0 {
			t.Errorf("unexpected failures: %v", report.Failures)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("By Slug", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "2023-05-07-first-post.md", "---\nlayout: post\ntitle: First\ntags: ['a']\n---\ncontent here")

		repo := NewRepository(Config{Path: dir, MustExist: true})
		post, err := repo.Load(context.Background(), "first-post")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if post.Title != "First" {
			t.Errorf("title mismatch: %s", post.Title)
		}
		if post.Body != "content here" {
			t.Errorf("body mismatch: %q", post.Body)
		}
	})

	t.Run("Not Found", func(t *testing.T) {
		dir := t.TempDir()

		repo := NewRepository(Config{Path: dir, MustExist: true})
		_, err := repo.Load(context.Background(), "nope")
		if !errors.Is(err, core.ErrPostNotFound) {
			t.Errorf("expected ErrPostNotFound, got %v", err)
		}
	})

	t.Run("Resolves Via Cache After Batch", func(t *testing.T) {
		dir := t.TempDir()
		writeFixture(t, dir, "2023-05-07-cached.md", "---\nlayout: post\ntitle: Cached\n---\nx")

		repo := NewRepository(Config{Path: dir, MustExist: true})
		if _, err := repo.LoadAll(context.Background()); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		// A fresh repository instance reads the persisted index.
		repo2 := NewRepository(Config{Path: dir, MustExist: true})
		post, err := repo2.Load(context.Background(), "cached")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if post.Title != "Cached" {
			t.Errorf("title mismatch: %s", post.Title)
		}
	})
}

func TestListMeta(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "2023-02-01-one.md", "---\nlayout: post\ntitle: One\ntags: ['x']\n---\nlong body one")
	writeFixture(t, dir, "2023-03-01-two.md", "---\nlayout: post\ntitle: Two\n---\nlong body two")

	repo := NewRepository(Config{Path: dir, MustExist: true})

	posts, err := repo.ListMeta(context.Background())
	if err != nil {
		t.Fatalf("ListMeta failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	for _, post := range posts {
		if post.Body != "" {
			t.Errorf("ListMeta should omit bodies, got %q", post.Body)
		}
	}
	if posts[0].Slug != "two" || posts[1].Slug != "one" {
		t.Errorf("unexpected order: %s, %s", posts[0].Slug, posts[1].Slug)
	}

	// Index persisted for the next run.
	if _, err := os.Stat(filepath.Join(dir, ".peat", "index.json")); err != nil {
		t.Errorf("index cache not written: %v", err)
	}

	// Second pass is served from the cache and must agree.
	again, err := repo.ListMeta(context.Background())
	if err != nil {
		t.Fatalf("second ListMeta failed: %v", err)
	}
	if len(again) != 2 || again[0].Title != "Two" || again[1].Title != "One" {
		t.Errorf("cached listing mismatch: %+v", again)
	}
}

func TestInitialize(t *testing.T) {
	t.Run("MustExist Fails On Missing Directory", func(t *testing.T) {
		repo := NewRepository(Config{Path: filepath.Join(t.TempDir(), "missing"), MustExist: true})
		if err := repo.Initialize(context.Background()); err == nil {
			t.Error("expected failure for missing directory")
		}
	})

	t.Run("Creates Directory Otherwise", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fresh")
		repo := NewRepository(Config{Path: path})
		if err := repo.Initialize(context.Background()); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			t.Error("content directory not created")
		}
	})
}
