package frontmatter

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/aretw0/peat/pkg/core"
)

// Well-known front-matter keys. Everything else lands in Post.Extra.
const (
	keyLayout = "layout"
	keyTitle  = "title"
	keyTags   = "tags"
)

// MapPost turns a parsed document into a validated core.Post.
// source is attached verbatim for error reporting and Post.Source.
//
// Errors wrap core.ErrMalformedField (a well-known key has the wrong shape)
// or core.ErrMissingRequiredField (layout or title absent).
func MapPost(doc Document, source string) (core.Post, error) {
	post := core.Post{
		Source: source,
		Body:   doc.Body,
		Tags:   []string{},
		Extra:  core.Metadata{},
	}

	for key, value := range doc.Meta {
		switch key {
		case keyLayout:
			s, ok := asString(value)
			if !ok {
				return post, fmt.Errorf("layout must be a string, got %T: %w", value, core.ErrMalformedField)
			}
			post.Layout = s
		case keyTitle:
			s, ok := asString(value)
			if !ok {
				return post, fmt.Errorf("title must be a string, got %T: %w", value, core.ErrMalformedField)
			}
			post.Title = s
		case keyTags:
			tags, err := normalizeTags(value)
			if err != nil {
				return post, err
			}
			post.Tags = tags
		default:
			post.Extra[key] = value
		}
	}

	if err := validateRequired(post); err != nil {
		return post, err
	}
	return post, nil
}

// validateRequired enforces the presence of layout and title.
func validateRequired(post core.Post) error {
	err := validation.ValidateStruct(&post,
		validation.Field(&post.Layout, validation.Required),
		validation.Field(&post.Title, validation.Required),
	)
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		// Report the first missing field in a stable order.
		for _, field := range []string{"Layout", "Title"} {
			if _, missing := verrs[field]; missing {
				switch field {
				case "Layout":
					return fmt.Errorf("%s: %w", keyLayout, core.ErrMissingRequiredField)
				case "Title":
					return fmt.Errorf("%s: %w", keyTitle, core.ErrMissingRequiredField)
				}
			}
		}
	}
	return fmt.Errorf("%v: %w", err, core.ErrMissingRequiredField)
}

// normalizeTags accepts the tag forms seen in the wild and produces an
// ordered []string. Inline flow sequences and block lists arrive here as
// []any; a bare scalar is treated as a single tag.
func normalizeTags(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := asString(item)
			if !ok {
				return nil, fmt.Errorf("tags must be a sequence of strings, got element %T: %w", item, core.ErrMalformedField)
			}
			tags = append(tags, s)
		}
		return tags, nil
	case []string:
		return append([]string{}, v...), nil
	case string:
		return []string{v}, nil
	default:
		return nil, fmt.Errorf("tags must be a sequence of strings, got %T: %w", value, core.ErrMalformedField)
	}
}

// asString converts scalar front-matter values to their string form.
// YAML decodes unquoted numerics as int/float; tag lists like [2021, go]
// should not fail on that.
func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int, int64, uint64, float64, bool:
		return fmt.Sprintf("%v", v), true
	default:
		return "", false
	}
}

// FromPost rebuilds the document form of a post, the inverse of MapPost.
// Useful for round-trip checks and for writing normalized copies.
func FromPost(post core.Post) Document {
	meta := core.Metadata{}
	for k, v := range post.Extra {
		meta[k] = v
	}
	if post.Layout != "" {
		meta[keyLayout] = post.Layout
	}
	if post.Title != "" {
		meta[keyTitle] = post.Title
	}
	if len(post.Tags) > 0 {
		tags := make([]any, len(post.Tags))
		for i, t := range post.Tags {
			tags[i] = t
		}
		meta[keyTags] = tags
	}
	return Document{Meta: meta, Body: post.Body}
}
