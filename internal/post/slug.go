package post

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaces     = regexp.MustCompile(`\s+`)
	dashes     = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title. Applying it twice yields
// the same result as applying it once.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = disallowed.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueSlug appends the creation time in unix milliseconds to the title slug.
func UniqueSlug(title string, createdAt time.Time) string {
	suffix := strconv.FormatInt(createdAt.UnixMilli(), 10)
	base := Slugify(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
