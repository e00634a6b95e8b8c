package sanitizer_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/digest/pkg/sanitizer"
)

func TestPreview(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 250)
	unicode := strings.Repeat("ü", 205)

	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{
			name:     "short text unchanged",
			input:    "<p>Build APIs in Go.</p>",
			limit:    200,
			expected: "Build APIs in Go.",
		},
		{
			name:     "exact length not truncated",
			input:    strings.Repeat("b", 200),
			limit:    200,
			expected: strings.Repeat("b", 200),
		},
		{
			name:     "long text truncated with ellipsis",
			input:    long,
			limit:    200,
			expected: strings.Repeat("a", 200) + "...",
		},
		{
			name:     "counts runes not bytes",
			input:    unicode,
			limit:    200,
			expected: strings.Repeat("ü", 200) + "...",
		},
		{
			name:     "trailing space removed before ellipsis",
			input:    "one two three",
			limit:    4,
			expected: "one...",
		},
		{
			name:     "markup does not count",
			input:    "<strong>" + strings.Repeat("c", 10) + "</strong>",
			limit:    10,
			expected: strings.Repeat("c", 10),
		},
		{
			name:     "zero limit",
			input:    "text",
			limit:    0,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, sanitizer.Preview(tt.input, tt.limit))
		})
	}
}

func TestPreviewDefaultLength(t *testing.T) {
	t.Parallel()

	got := sanitizer.Preview(strings.Repeat("word ", 100), sanitizer.PreviewLength)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), sanitizer.PreviewLength+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}
