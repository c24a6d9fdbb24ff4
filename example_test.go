package peat_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/peat"
)

// Example_basic demonstrates loading a small collection and reading a post.
func Example_basic() {
	// Create a temporary content directory for the example
	tmpDir, err := os.MkdirTemp("", "peat-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	post := "---\nlayout: post\ntitle: \"Hello\"\ntags: ['example']\n---\nFirst post body.\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "2024-01-15-hello.md"), []byte(post), 0644); err != nil {
		log.Fatal(err)
	}

	// Initialize the peat service over the content directory.
	svc, err := peat.New(tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Load the whole collection
	report, err := svc.CollectPosts(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded %d posts, %d failures\n", len(report.Posts), len(report.Failures))

	// 2. Read one back by slug
	p, err := svc.GetPost(ctx, "hello")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Found post: %s (%s)\n", p.Slug, p.Title)
	// Output:
	// Loaded 1 posts, 0 failures
	// Found post: hello (Hello)
}
