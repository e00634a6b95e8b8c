package render

import (
	"io/fs"
	"time"
)

// DefaultUnsubscribeURL is the Resend merge tag replaced per recipient.
const DefaultUnsubscribeURL = "{{{RESEND_UNSUBSCRIBE_URL}}}"

// Config holds branding used by the documents.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Brand          string `env:"BRAND_NAME" envDefault:"EUJobs"`
	SiteURL        string `env:"BRAND_SITE_URL"`
	UnsubscribeURL string `env:"BRAND_UNSUBSCRIBE_URL" envDefault:"{{{RESEND_UNSUBSCRIBE_URL}}}"`
	Sponsor        Sponsor
}

// Sponsor is an optional block placed after the first job.
// It is shown only when Title and URL are both set.
type Sponsor struct {
	Title string `env:"BRAND_SPONSOR_TITLE"`
	Text  string `env:"BRAND_SPONSOR_TEXT"`
	URL   string `env:"BRAND_SPONSOR_URL"`
	Label string `env:"BRAND_SPONSOR_LABEL" envDefault:"Learn more"`
}

// Enabled reports whether the sponsor block should be rendered.
func (s Sponsor) Enabled() bool { return s.Title != "" && s.URL != "" }

type options struct {
	location  *time.Location
	templates fs.FS
}

// Option configures a Renderer.
type Option func(*options)

// WithLocation sets the location stamps are formatted in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithTemplates replaces the embedded templates. The filesystem must hold
// jobs.md, letter.md and their layouts under layouts/.
func WithTemplates(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.templates = fsys
		}
	}
}
