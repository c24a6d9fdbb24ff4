package core

import (
	"context"
	"errors"
	"sync"
)

// Service handles the business logic for post collections.
type Service struct {
	source Source

	mu              sync.RWMutex
	eventBufferSize int
}

// NewService creates a new Service backed by the given source.
func NewService(source Source, eventBufferSize int) *Service {
	return &Service{source: source, eventBufferSize: eventBufferSize}
}

// GetPost retrieves a single post by slug.
func (s *Service) GetPost(ctx context.Context, slug string) (Post, error) {
	if slug == "" {
		return Post{}, errors.New("post slug cannot be empty")
	}
	return s.source.Load(ctx, slug)
}

// CollectPosts runs a batch load over the whole collection and returns
// the full report, failures included.
func (s *Service) CollectPosts(ctx context.Context) (Report, error) {
	return s.source.LoadAll(ctx)
}

// ListPosts returns every post that parsed successfully.
// Use CollectPosts when the caller needs the failure list too.
func (s *Service) ListPosts(ctx context.Context) ([]Post, error) {
	report, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return report.Posts, nil
}

// IndexPosts returns metadata-only posts, using the source's index when it
// has one and falling back to a full batch load otherwise.
func (s *Service) IndexPosts(ctx context.Context) ([]Post, error) {
	if indexer, ok := s.source.(Indexer); ok {
		return indexer.ListMeta(ctx)
	}
	report, err := s.source.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range report.Posts {
		report.Posts[i].Body = ""
	}
	return report.Posts, nil
}

// FilterByTag narrows posts to those carrying the given tag.
// An empty tag returns the input unchanged.
func FilterByTag(posts []Post, tag string) []Post {
	if tag == "" {
		return posts
	}
	var filtered []Post
	for _, p := range posts {
		if p.HasTag(tag) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Watch observes changes in the source if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.source.(Watchable)
	if !ok {
		return nil, errors.New("source does not support watching")
	}
	return w.Watch(ctx, pattern)
}
