// Package site generates a static HTML site from a post collection.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aretw0/peat/pkg/adapters/fs"
	"github.com/aretw0/peat/pkg/core"
	"github.com/aretw0/peat/pkg/render"
)

// Config holds the configuration for a site build.
type Config struct {
	// OutputDir receives the generated pages.
	OutputDir string
	// LayoutsDir holds <layout>.html templates. Posts whose layout has no
	// template fall back to the built-in one.
	LayoutsDir string
	// Title is the site-wide title used on the index page.
	Title string
	Logger *slog.Logger
}

// PageData is the template context for a single rendered post.
type PageData struct {
	SiteTitle string
	Post      core.Post
	Content   template.HTML
	Permalink string
}

// IndexData is the template context for the generated index page.
type IndexData struct {
	SiteTitle string
	Posts     []PageData
}

// Result summarizes a build. Skipped entries mirror the batch failure
// isolation contract: a post that fails to render never aborts the build.
type Result struct {
	Rendered int
	Skipped  []error
}

// Builder renders posts through layouts into a static output tree.
type Builder struct {
	config   Config
	renderer *render.Renderer

	layouts map[string]*template.Template
}

// NewBuilder creates a Builder using the given renderer.
func NewBuilder(config Config, renderer *render.Renderer) *Builder {
	if config.Title == "" {
		config.Title = "Posts"
	}
	return &Builder{
		config:   config,
		renderer: renderer,
		layouts:  make(map[string]*template.Template),
	}
}

// Build renders every post in the report and writes the output tree.
// Files are written atomically so a crashed build never leaves a page
// half-written.
func (b *Builder) Build(ctx context.Context, report core.Report) (Result, error) {
	var result Result

	if err := os.MkdirAll(b.config.OutputDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create output directory: %w", err)
	}

	var indexEntries []PageData
	for _, post := range report.Posts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		page, err := b.buildPost(post)
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Errorf("%s: %w", post.Source, err))
			if b.config.Logger != nil {
				b.config.Logger.Warn("skipping post", "source", post.Source, "error", err)
			}
			continue
		}
		result.Rendered++
		indexEntries = append(indexEntries, page)
	}

	if err := b.buildIndex(indexEntries); err != nil {
		return result, err
	}

	return result, nil
}

// buildPost renders one post and writes its page.
func (b *Builder) buildPost(post core.Post) (PageData, error) {
	if post.Title == "" {
		post.Title = TitleFromSlug(post.Slug)
	}

	body, err := b.renderer.Render(post)
	if err != nil {
		return PageData{}, err
	}

	page := PageData{
		SiteTitle: b.config.Title,
		Post:      post,
		Content:   template.HTML(body),
		Permalink: Permalink(post),
	}

	tmpl, err := b.layout(post.Layout)
	if err != nil {
		return PageData{}, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		return PageData{}, fmt.Errorf("execute layout %q: %w", post.Layout, err)
	}

	outPath := filepath.Join(b.config.OutputDir, filepath.FromSlash(strings.TrimPrefix(page.Permalink, "/")), "index.html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return PageData{}, fmt.Errorf("failed to create page directory: %w", err)
	}
	if err := fs.WriteFileAtomic(outPath, buf.Bytes(), 0644); err != nil {
		return PageData{}, err
	}

	return page, nil
}

// buildIndex writes the listing page. Posts arrive already sorted by date
// descending from the batch loader.
func (b *Builder) buildIndex(entries []PageData) error {
	tmpl, err := template.New("index").Parse(defaultIndexTemplate)
	if err != nil {
		return fmt.Errorf("parse index template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, IndexData{SiteTitle: b.config.Title, Posts: entries}); err != nil {
		return fmt.Errorf("execute index template: %w", err)
	}

	return fs.WriteFileAtomic(filepath.Join(b.config.OutputDir, "index.html"), buf.Bytes(), 0644)
}

// layout resolves and caches a layout template by name.
func (b *Builder) layout(name string) (*template.Template, error) {
	if name == "" {
		name = "post"
	}
	if tmpl, ok := b.layouts[name]; ok {
		return tmpl, nil
	}

	var tmpl *template.Template
	if b.config.LayoutsDir != "" {
		path := filepath.Join(b.config.LayoutsDir, name+".html")
		if _, err := os.Stat(path); err == nil {
			parsed, err := template.ParseFiles(path)
			if err != nil {
				return nil, fmt.Errorf("parse layout %q: %w", name, err)
			}
			tmpl = parsed
		}
	}
	if tmpl == nil {
		parsed, err := template.New(name).Parse(defaultPostTemplate)
		if err != nil {
			return nil, fmt.Errorf("parse built-in layout: %w", err)
		}
		tmpl = parsed
	}

	b.layouts[name] = tmpl
	return tmpl, nil
}

// Permalink returns the URL path for a post: /YYYY/MM/slug/ for dated posts,
// /slug/ otherwise.
func Permalink(post core.Post) string {
	if post.Date.IsZero() {
		return "/" + post.Slug + "/"
	}
	return fmt.Sprintf("/%04d/%02d/%s/", post.Date.Year(), int(post.Date.Month()), post.Slug)
}

// TitleFromSlug derives a display title for posts that lack one.
func TitleFromSlug(slug string) string {
	words := strings.ReplaceAll(slug, "-", " ")
	return cases.Title(language.English).String(words)
}

const defaultPostTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Post.Title}} - {{.SiteTitle}}</title>
</head>
<body>
<article>
<h1>{{.Post.Title}}</h1>
{{if not .Post.Date.IsZero}}<time datetime="{{.Post.Date.Format "2006-01-02"}}">{{.Post.Date.Format "January 2, 2006"}}</time>{{end}}
{{.Content}}
{{if .Post.Tags}}<ul class="tags">{{range .Post.Tags}}<li>{{.}}</li>{{end}}</ul>{{end}}
</article>
</body>
</html>
`

const defaultIndexTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.SiteTitle}}</title>
</head>
<body>
<h1>{{.SiteTitle}}</h1>
<ul>
{{range .Posts}}<li><a href="{{.Permalink}}">{{.Post.Title}}</a>{{if not .Post.Date.IsZero}} <time>{{.Post.Date.Format "2006-01-02"}}</time>{{end}}</li>
{{end}}</ul>
</body>
</html>
`
