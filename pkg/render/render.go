// Package render turns post bodies into HTML using goldmark.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/aretw0/peat/pkg/core"
)

// Options controls rendering behaviour.
type Options struct {
	// HardWraps renders single newlines as <br>.
	HardWraps bool
	// SafeMode suppresses raw HTML in the output. Off by default: posts
	// in the wild embed raw snippets on purpose.
	SafeMode bool
}

// Renderer converts Markdown bodies to HTML. It is stateless and safe for
// concurrent use.
type Renderer struct {
	engine goldmark.Markdown
}

// New constructs a renderer with GFM, linkify, and task-list extensions and
// auto heading IDs, matching what Jekyll-era posts expect.
func New(opts Options) *Renderer {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engine := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)

	return &Renderer{engine: engine}
}

// Render converts the post's body to HTML. Fenced code blocks keep their
// language hint as a language-* class.
func (r *Renderer) Render(post core.Post) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(post.Body), &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", post.Slug, err)
	}
	return buf.Bytes(), nil
}
