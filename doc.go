// Package peat is the Composition Root for the peat library.
//
// It connects the core business logic (Domain Layer) with the infrastructure
// adapters (Content Sources) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Peat treats a directory of Jekyll-style Markdown posts as a read-only
// content collection. Each file is an independent record: a front-matter
// block (layout, title, tags) followed by a Markdown body. Peat parses,
// validates, and renders those records; it never authors or mutates them.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from storage details.
//   - **Failure Isolation**: One malformed post never breaks the batch.
//   - **Metadata First**: Front-matter parsing with a precise error taxonomy.
//   - **Filename Convention**: Slug and date derived from YYYY-MM-DD-slug.md.
//   - **Default Adapter (FS)**: Directory scanning with an mtime index cache
//     and fsnotify-based watching.
//   - **Static Build**: Goldmark rendering through HTML layouts.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := peat.New("./posts",
//		peat.WithPattern("**/*.md"),
//		peat.WithLogger(logger),
//	)
//
//	// Load the whole collection
//	report, err := svc.CollectPosts(ctx)
package peat
