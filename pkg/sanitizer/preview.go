package sanitizer

import (
	"strings"
	"unicode/utf8"
)

// PreviewLength is the default preview size used for job descriptions.
const PreviewLength = 200

const ellipsis = "..."

// Preview strips markup from s and cuts it to at most limit runes,
// appending "..." when anything was cut. A non-positive limit returns "".
func Preview(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	text := StripHTML(s)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:limit]), " ") + ellipsis
}
