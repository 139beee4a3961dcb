package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// The renderer drops these strings straight into the DOM.
var strict = bluemonday.StrictPolicy()

// SanitizeText strips markup from user supplied labels and names.
// Entities produced by the policy are unescaped again so "Q&A" round-trips.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
