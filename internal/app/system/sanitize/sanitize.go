// Package sanitize cleans caller-supplied text at the REST boundary.
//
// Room titles, display names, and caption text all come straight from
// clients and go straight back out to every other client in the room, so
// markup is stripped entirely rather than filtered.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips all HTML from s, resolves entities the policy escaped, and
// trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
