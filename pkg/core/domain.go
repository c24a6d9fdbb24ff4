// Post is the central entity of the domain.
package core

import "time"

// Metadata represents the flexible key-value pairs carried by a post's
// front matter beyond the well-known fields.
type Metadata map[string]any

// Post is the central entity of the domain.
// It pairs the structured front matter of a content file with its raw
// Markdown body. Posts are authored externally and never mutated here.
type Post struct {
	// Slug is the URL-safe identifier, derived from the filename.
	Slug string
	// Date is the publish date derived from the filename convention
	// (YYYY-MM-DD-slug.md). Zero when the filename carries no date.
	Date time.Time
	// Layout names the presentation template used to render the post.
	Layout string
	// Title is the post's display title.
	Title string
	// Tags preserve authoring order. May be empty, never nil after parse.
	Tags []string
	// Extra holds front-matter keys this package does not interpret.
	// Downstream renderers may use them.
	Extra Metadata
	// Body is the raw Markdown text after the closing front-matter delimiter.
	Body string
	// Source identifies the file the post was loaded from, relative to
	// the content root.
	Source string
}

// HasTag reports whether tag appears in the post's tag list.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// EventType represents the type of change in the content directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a post file.
type Event struct {
	Type      EventType
	Slug      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer so events can double as log lines.
func (e Event) String() string {
	return string(e.Type) + " " + e.Slug
}
