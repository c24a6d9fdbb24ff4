package fs

import (
	"path"
	"regexp"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
)

// datedName matches the Jekyll filename convention: YYYY-MM-DD-slug.md.
var datedName = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// parseFilename derives the slug and publish date from a post's relative
// path. Files that do not follow the dated convention still get a slug
// (the normalized stem) and a zero date.
func parseFilename(relPath string) (string, time.Time) {
	stem := strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))

	var date time.Time
	if m := datedName.FindStringSubmatch(stem); m != nil {
		if parsed, err := time.Parse("2006-01-02", m[1]); err == nil {
			date = parsed
			stem = m[2]
		}
	}

	return normalizeSlug(stem), date
}

// normalizeSlug applies the default slug rules, falling back to a lowered
// stem when normalization rejects the input outright.
func normalizeSlug(stem string) string {
	if slug.IsValid(stem) {
		return stem
	}
	normalized, err := slug.Normalize(stem)
	if err != nil || normalized == "" {
		return strings.ToLower(stem)
	}
	return normalized
}
