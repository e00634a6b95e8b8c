package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()
		// Keeps words from adjacent block elements apart
		strictPolicy.AddSpaceWhenStrippingTag(true)
	})
}

// StripHTML removes all markup, decodes entities and collapses runs of
// whitespace into single spaces.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return CollapseSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// CollapseSpace trims s and replaces every whitespace run with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
