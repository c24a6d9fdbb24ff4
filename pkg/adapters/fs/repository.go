package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/peat/pkg/core"
	"github.com/aretw0/peat/pkg/frontmatter"
)

// Repository implements core.Source over a directory of Markdown posts.
type Repository struct {
	Path   string
	cache  *cache
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// Config holds the configuration for the filesystem source.
type Config struct {
	Path         string
	Pattern      string // doublestar glob relative to Path, e.g. "**/*.md"
	Workers      int    // bounded pool size for batch loads
	MustExist    bool
	SystemDir    string // e.g. ".peat"
	EventBuffer  int
	Logger       *slog.Logger
	ErrorHandler func(error)
}

const (
	// DefaultPattern selects every Markdown file under the content root.
	DefaultPattern = "**/*.md"
	// DefaultSystemDir is the hidden directory holding the index cache.
	DefaultSystemDir = ".peat"
	// DefaultWorkers bounds the batch parse pool.
	DefaultWorkers = 4
	// DefaultEventBuffer sizes the watch event channel.
	DefaultEventBuffer = 16
)

// NewRepository creates a new filesystem-backed post source.
func NewRepository(config Config) *Repository {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultEventBuffer
	}
	return &Repository{
		Path:   config.Path,
		config: config,
		cache:  newCache(config.Path, config.SystemDir),
	}
}

// Initialize ensures the content directory is usable.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("content path does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat content path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("content path is not a directory: %s", r.Path)
		}
		return nil
	}
	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}
	return nil
}

// Load retrieves a single post by its slug.
//
// Workflow:
//  1. Resolve slug -> relative path via the index cache (fast path).
//  2. On miss, scan the directory and match derived slugs.
//  3. Parse the file and refresh its cache entry.
func (r *Repository) Load(ctx context.Context, slug string) (core.Post, error) {
	_ = r.cache.Load()

	if relPath, ok := r.cache.ResolveSlug(slug); ok {
		if derived, _ := parseFilename(relPath); derived == slug {
			if post, mtime, err := r.loadFile(relPath); err == nil {
				r.rememberPost(relPath, post, mtime)
				return post, nil
			}
			// Stale cache entry: fall through to a full scan.
		}
	}

	files, err := r.scan(ctx)
	if err != nil {
		return core.Post{}, err
	}

	for _, relPath := range files {
		derived, _ := parseFilename(relPath)
		if derived != slug {
			continue
		}
		post, mtime, err := r.loadFile(relPath)
		if err != nil {
			return core.Post{}, err
		}
		r.rememberPost(relPath, post, mtime)
		_ = r.cache.Save()
		return post, nil
	}

	return core.Post{}, fmt.Errorf("%q: %w", slug, core.ErrPostNotFound)
}

// LoadAll parses every matching file through a bounded worker pool.
// Each file's parse is independent; one malformed post lands in the report's
// failure list without touching the rest.
func (r *Repository) LoadAll(ctx context.Context) (core.Report, error) {
	files, err := r.scan(ctx)
	if err != nil {
		return core.Report{}, err
	}

	_ = r.cache.Load()

	type outcome struct {
		post  core.Post
		mtime time.Time
		fail  *core.ParseError
	}

	results := make([]outcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for i, relPath := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			post, mtime, err := r.loadFile(relPath)
			if err != nil {
				results[i] = outcome{fail: asParseError(relPath, err)}
				return nil
			}
			results[i] = outcome{post: post, mtime: mtime}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return core.Report{}, err
	}

	var report core.Report
	seen := make(map[string]bool, len(files))
	for i, res := range results {
		relPath := files[i]
		if res.fail != nil {
			report.Failures = append(report.Failures, res.fail)
			r.cache.Delete(relPath)
			continue
		}
		seen[relPath] = true
		r.rememberPost(relPath, res.post, res.mtime)
		report.Posts = append(report.Posts, res.post)
	}

	sortPosts(report.Posts)

	r.cache.Prune(seen)
	if err := r.cache.Save(); err != nil && r.config.Logger != nil {
		r.config.Logger.Warn("failed to save index cache", "error", err)
	}

	return report, nil
}

// ListMeta returns metadata-only posts (no body), served from the index
// cache when file mtimes match. Files changed since the last batch are
// re-parsed and the cache refreshed.
func (r *Repository) ListMeta(ctx context.Context) ([]core.Post, error) {
	files, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Load()

	var posts []core.Post
	seen := make(map[string]bool, len(files))
	for _, relPath := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seen[relPath] = true

		info, err := os.Stat(filepath.Join(r.Path, filepath.FromSlash(relPath)))
		if err != nil {
			continue
		}

		if entry, hit := r.cache.Get(relPath, info.ModTime()); hit {
			posts = append(posts, core.Post{
				Slug:   entry.Slug,
				Date:   entry.Date,
				Layout: entry.Layout,
				Title:  entry.Title,
				Tags:   entry.Tags,
				Source: relPath,
			})
			continue
		}

		post, mtime, err := r.loadFile(relPath)
		if err != nil {
			continue // Skip unparseable; LoadAll reports them.
		}
		r.rememberPost(relPath, post, mtime)
		post.Body = ""
		posts = append(posts, post)
	}

	sortPosts(posts)

	r.cache.Prune(seen)
	_ = r.cache.Save()

	return posts, nil
}

// scan walks the content directory and returns relative slash paths of
// every file matching the configured glob.
func (r *Repository) scan(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			name := d.Name()
			if path != r.Path && (name == r.config.SystemDir || name == ".git" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), TempFilePrefix) {
			return nil
		}

		relPath, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		match, err := doublestar.Match(r.config.Pattern, relPath)
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", r.config.Pattern, err)
		}
		if match {
			files = append(files, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// loadFile reads and parses a single post file.
func (r *Repository) loadFile(relPath string) (core.Post, time.Time, error) {
	fullPath := filepath.Join(r.Path, filepath.FromSlash(relPath))

	info, err := os.Stat(fullPath)
	if err != nil {
		return core.Post{}, time.Time{}, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return core.Post{}, time.Time{}, err
	}

	doc, err := frontmatter.ParseBytes(data)
	if err != nil {
		return core.Post{}, time.Time{}, err
	}

	post, err := frontmatter.MapPost(doc, relPath)
	if err != nil {
		return core.Post{}, time.Time{}, err
	}

	post.Slug, post.Date = parseFilename(relPath)
	return post, info.ModTime(), nil
}

// rememberPost refreshes the cache entry for a parsed post.
func (r *Repository) rememberPost(relPath string, post core.Post, mtime time.Time) {
	r.cache.Set(relPath, &indexEntry{
		Slug:         post.Slug,
		Title:        post.Title,
		Layout:       post.Layout,
		Tags:         post.Tags,
		Date:         post.Date,
		LastModified: mtime,
	})
}

// asParseError wraps any per-file failure so batch callers get a uniform
// failure record carrying the source path.
func asParseError(relPath string, err error) *core.ParseError {
	if pe, ok := err.(*core.ParseError); ok {
		return pe
	}
	return core.NewParseError(relPath, err, err.Error())
}

// sortPosts orders posts by date descending, then slug, so batch output is
// deterministic regardless of pool completion order.
func sortPosts(posts []core.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
}
