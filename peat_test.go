package peat_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/peat"
)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestCollectPosts_FailureIsolation(t *testing.T) {
	tmp := t.TempDir()

	for i, name := range []string{
		"2023-01-01-one.md",
		"2023-02-01-two.md",
		"2023-03-01-three.md",
		"2023-04-01-four.md",
	} {
		writePost(t, tmp, name, "---\nlayout: post\ntitle: Post\ntags: ['t']\n---\nbody "+string(rune('a'+i)))
	}
	writePost(t, tmp, "2023-05-01-bad.md", "---\nlayout: post\ntitle: Bad\n") // never closed

	svc, err := peat.New(tmp)
	require.NoError(t, err)

	report, err := svc.CollectPosts(context.Background())
	require.NoError(t, err)

	assert.Len(t, report.Posts, 4, "one malformed file must not hide the valid ones")
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "2023-05-01-bad.md", report.Failures[0].Source)
	assert.True(t, errors.Is(report.Failures[0], peat.ErrUnterminatedFrontMatter))
	assert.False(t, report.OK())
}

func TestGetPost_NotFound(t *testing.T) {
	svc, err := peat.New(t.TempDir())
	require.NoError(t, err)

	_, err = svc.GetPost(context.Background(), "ghost")
	assert.True(t, errors.Is(err, peat.ErrPostNotFound))
}

func TestIndexPosts_PublicAPI(t *testing.T) {
	tmp := t.TempDir()
	writePost(t, tmp, "2024-02-02-indexed.md", "---\nlayout: post\ntitle: Indexed\ntags: ['go']\n---\na long body that should not show up")

	svc, err := peat.New(tmp)
	require.NoError(t, err)

	posts, err := svc.IndexPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "indexed", posts[0].Slug)
	assert.Empty(t, posts[0].Body)
	assert.Equal(t, []string{"go"}, posts[0].Tags)
}

func TestWatch_FileModification(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping watch test in short mode")
	}

	tmp := t.TempDir()
	svc, err := peat.New(tmp)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events, err := svc.Watch(ctx, "**/*.md")
	require.NoError(t, err, "Watch should be supported")
	require.NotNil(t, events)

	// Wait a bit to ensure watcher is ready (naive)
	time.Sleep(100 * time.Millisecond)

	writePost(t, tmp, "2024-05-05-watched.md", "---\nlayout: post\ntitle: W\n---\nhello watcher")

	select {
	case event := <-events:
		assert.Equal(t, "watched", event.Slug)
	case <-ctx.Done():
		t.Fatal("timed out waiting for watch event")
	}
}
