package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/ELGOUMRIYASSINE/BlogBuddy2/internal/models"
)

// Validation limits for post fields.
const (
	maxTitleLen    = 300
	maxExcerptLen  = 1_000
	maxContentLen  = 100_000
	maxAuthorLen   = 200
	maxCategoryLen = 100
	maxImageURLLen = 2_048
)

// validatePostInput checks a create payload against the post field
// schema. Returns a map of field name to message; an empty map means
// the payload is valid.
func validatePostInput(in models.PostInput) map[string]string {
	errs := map[string]string{}

	checkRequired(errs, "title", in.Title, maxTitleLen)
	checkRequired(errs, "excerpt", in.Excerpt, maxExcerptLen)
	checkRequired(errs, "content", in.Content, maxContentLen)
	checkRequired(errs, "author", in.Author, maxAuthorLen)
	checkRequired(errs, "category", in.Category, maxCategoryLen)

	if in.ImageURL != nil && utf8.RuneCountInString(*in.ImageURL) > maxImageURLLen {
		errs["imageUrl"] = "imageUrl is too long"
	}

	return errs
}

// validatePostPatch checks an update payload. Absent fields are fine;
// provided required fields must not be blank.
func validatePostPatch(patch models.PostPatch) map[string]string {
	errs := map[string]string{}

	if patch.Title != nil {
		checkRequired(errs, "title", *patch.Title, maxTitleLen)
	}
	if patch.Excerpt != nil {
		checkRequired(errs, "excerpt", *patch.Excerpt, maxExcerptLen)
	}
	if patch.Content != nil {
		checkRequired(errs, "content", *patch.Content, maxContentLen)
	}
	if patch.Author != nil {
		checkRequired(errs, "author", *patch.Author, maxAuthorLen)
	}
	if patch.Category != nil {
		checkRequired(errs, "category", *patch.Category, maxCategoryLen)
	}
	if patch.ImageURL != nil && utf8.RuneCountInString(*patch.ImageURL) > maxImageURLLen {
		errs["imageUrl"] = "imageUrl is too long"
	}

	return errs
}

// checkRequired records an error when the value is blank or exceeds
// the rune limit.
func checkRequired(errs map[string]string, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		errs[field] = field + " is required"
		return
	}
	if utf8.RuneCountInString(value) > maxLen {
		errs[field] = field + " is too long"
	}
}
