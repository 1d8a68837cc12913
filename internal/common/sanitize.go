package common

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// PlainText strips all markup; used for titles, handles and short fields.
// The result is text, not HTML, so entities are decoded again.
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// RichText keeps the safe subset of user markup for post bodies.
func RichText(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}
