package render

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/digest/pkg/content"
)

const (
	longDate  = "Monday, January 2, 2006"
	shortDate = "January 2, 2006"
)

var seniorityColors = map[content.Seniority]string{
	content.SeniorityIntern: "#6b7280",
	content.SeniorityJunior: "#10b981",
	content.SeniorityMid:    "#3b82f6",
	content.SenioritySenior: "#8b5cf6",
}

const defaultBadgeColor = "#6b7280"

// title upper-cases the first letter of every word.
// Casers keep state, so each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

func seniorityLabel(s content.Seniority) string {
	if s == "" {
		return ""
	}
	return title(string(s))
}

func seniorityColor(s content.Seniority) string {
	if c, ok := seniorityColors[s]; ok {
		return c
	}
	return defaultBadgeColor
}

// formatSalary renders an annual EUR amount as "950 EUR", "45K EUR" or "1.2M EUR".
func formatSalary(amount *int64) string {
	if amount == nil || *amount <= 0 {
		return ""
	}
	v := *amount
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM EUR", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.0fK EUR", float64(v)/1_000)
	default:
		return fmt.Sprintf("%d EUR", v)
	}
}

func formatLocation(j content.JobPosting) string {
	city, country := j.City, j.Country
	if city == "" {
		city = "Remote"
	}
	if country == "" {
		country = "EU"
	}
	return city + ", " + country
}

func formatEmploymentType(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		t = "full"
	}
	if strings.HasSuffix(strings.ToLower(t), "time") {
		return title(t)
	}
	return title(t) + "-time"
}

// jobURL links to the listing on the brand site, or "" without a site.
func jobURL(site string, j content.JobPosting) string {
	if site == "" {
		return ""
	}
	ref := j.Slug
	if ref == "" {
		ref = j.ID
	}
	u, err := url.JoinPath(site, "jobs", ref)
	if err != nil {
		return ""
	}
	return u
}

// safeLink keeps absolute http(s) links and drops anything else.
func safeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return raw
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`,
	`{`, `\{`, `}`, `\}`, `[`, `\[`, `]`, `\]`,
	`(`, `\(`, `)`, `\)`, `#`, `\#`, `+`, `\+`,
	`-`, `\-`, `.`, `\.`, `!`, `\!`, `|`, `\|`,
	`<`, `\<`, `>`, `\>`, `~`, `\~`, `&`, `\&`,
)

// escapeMarkdown makes s render as literal text inside a markdown block.
// Line breaks are folded so a value cannot start a new block.
func escapeMarkdown(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return mdEscaper.Replace(s)
}

// paragraphs splits a letter body into trimmed, non-empty lines.
func paragraphs(body string) []string {
	var out []string
	for line := range strings.SplitSeq(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
