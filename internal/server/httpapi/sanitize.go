package httpapi

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// plainText strips every HTML element from user input. Entities escaped by the
// policy are decoded again because the stored value is plain text, not HTML.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
