// Package slug provides URL-friendly slug generation from post titles.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonSlugChars matches anything outside the slug alphabet before
	// hyphenation: lowercase letters, digits, spaces, and hyphens.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9 -]`)
	// whitespaceRuns collapses runs of whitespace into a single hyphen.
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// hyphenRuns collapses consecutive hyphens into one.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given title.
// The derivation is deterministic and idempotent.
// Example: "Hello, World!  2025" → "hello-world-2025"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonSlugChars.ReplaceAllString(result, "")
	result = whitespaceRuns.ReplaceAllString(result, "-")
	result = hyphenRuns.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// WithSuffix appends a numeric disambiguation suffix to a base slug.
// Used by stores to keep slugs unique across posts with similar titles.
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
