package core

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var slugSeparatorRegex = regexp.MustCompile(`[^a-z0-9]+`)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// Slugify lowers `s`, collapses every run of characters outside [a-z0-9] into a single hyphen
// and strips leading and trailing hyphens. Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	s = slugSeparatorRegex.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// NewID returns a new document ID.
func NewID() string {
	return uuid.New().String()
}

// Now returns the current UTC time truncated to milliseconds, the precision all stores keep.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
