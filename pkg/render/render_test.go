package render

import (
	"strings"
	"testing"

	"github.com/aretw0/peat/pkg/core"
)

func TestRender(t *testing.T) {
	t.Run("Headings And Code Fences", func(t *testing.T) {
		post := core.Post{
			Slug: "sample",
			Body: "# Getting Started\n\nSome prose.\n\n```go\nfunc main() {}\n```\n",
		}

		out, err := New(Options{}).Render(post)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		html := string(out)

		if !strings.Contains(html, "<h1 id=\"getting-started\">Getting Started</h1>") {
			t.Errorf("heading with auto ID missing:\n%s", html)
		}
		if !strings.Contains(html, "language-go") {
			t.Errorf("code fence language hint lost:\n%s", html)
		}
		if !strings.Contains(html, "func main()") {
			t.Errorf("code content missing:\n%s", html)
		}
	})

	t.Run("GFM Table", func(t *testing.T) {
		post := core.Post{
			Slug: "table",
			Body: "| a | b |\n|---|---|\n| 1 | 2 |\n",
		}

		out, err := New(Options{}).Render(post)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(string(out), "<table>") {
			t.Errorf("GFM table not rendered:\n%s", out)
		}
	})

	t.Run("Raw HTML Allowed By Default", func(t *testing.T) {
		post := core.Post{Slug: "raw", Body: "before\n\n<div class=\"embed\">x</div>\n"}

		out, err := New(Options{}).Render(post)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(string(out), "<div class=\"embed\">") {
			t.Errorf("raw HTML stripped in unsafe mode:\n%s", out)
		}
	})

	t.Run("Safe Mode Strips Raw HTML", func(t *testing.T) {
		post := core.Post{Slug: "raw", Body: "<script>alert(1)</script>\n"}

		out, err := New(Options{SafeMode: true}).Render(post)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if strings.Contains(string(out), "<script>") {
			t.Errorf("raw HTML leaked in safe mode:\n%s", out)
		}
	})

	t.Run("Hard Wraps", func(t *testing.T) {
		post := core.Post{Slug: "wrap", Body: "line one\nline two\n"}

		out, err := New(Options{HardWraps: true}).Render(post)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(string(out), "<br") {
			t.Errorf("hard wraps not applied:\n%s", out)
		}
	})
}
