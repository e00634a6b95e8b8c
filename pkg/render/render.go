package render

import (
	"embed"
	"errors"
	"html"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/mailer"
	"github.com/dmitrymomot/digest/pkg/sanitizer"
)

//go:embed templates
var embedded embed.FS

const (
	jobsTemplate   = "jobs.md"
	jobsLayout     = "jobs.html"
	letterTemplate = "letter.md"
	letterLayout   = "letter.html"
)

// Document is a rendered email ready for dispatch.
type Document struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer builds job and letter documents.
type Renderer struct {
	md       *mailer.Renderer
	cfg      Config
	location *time.Location
}

// New creates a renderer. Templates are parsed lazily and cached.
func New(cfg Config, opts ...Option) *Renderer {
	o := &options{location: time.UTC}
	for _, opt := range opts {
		opt(o)
	}
	if o.templates == nil {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			panic(err) // embedded directory is fixed at build time
		}
		o.templates = sub
	}
	if cfg.UnsubscribeURL == "" {
		cfg.UnsubscribeURL = DefaultUnsubscribeURL
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	return &Renderer{
		md: mailer.NewRendererWithConfig(o.templates, mailer.RendererConfig{
			Funcs: map[string]any{
				"md":      escapeMarkdown,
				"upper":   strings.ToUpper,
				"inc":     func(i int) int { return i + 1 },
				"safeCSS": func(s string) template.CSS { return template.CSS(s) },
				"button":  mailer.Button,
			},
		}),
		cfg:      cfg,
		location: o.location,
	}
}

type jobCard struct {
	Title          string
	Company        string
	Seniority      string
	SeniorityColor string
	Location       string
	Type           string
	Salary         string
	Preview        string
	URL            string
	ApplyURL       string
}

type jobsView struct {
	Brand           string
	SiteURL         string
	Date            string
	ShortDate       string
	Year            int
	Count           int
	Jobs            []jobCard
	Sponsor         *Sponsor
	UnsubscribeURL  string
	UnsubscribeLink template.HTML
}

// Jobs renders a job digest. stamp is the date shown in the subject and header.
func (r *Renderer) Jobs(sel content.JobSelection, stamp time.Time) (Document, error) {
	if sel.Empty() {
		return Document{}, ErrEmptySelection
	}

	local := stamp.In(r.location)
	view := jobsView{
		Brand:           r.cfg.Brand,
		SiteURL:         r.cfg.SiteURL,
		Date:            local.Format(longDate),
		ShortDate:       local.Format(shortDate),
		Year:            local.Year(),
		Count:           sel.Count(),
		Jobs:            make([]jobCard, 0, sel.Count()),
		UnsubscribeURL:  r.cfg.UnsubscribeURL,
		UnsubscribeLink: unsubscribeLink(r.cfg.UnsubscribeURL),
	}
	if r.cfg.Sponsor.Enabled() {
		sponsor := r.cfg.Sponsor
		sponsor.URL = safeLink(sponsor.URL)
		if sponsor.URL != "" {
			view.Sponsor = &sponsor
		}
	}

	for _, j := range sel.Jobs() {
		view.Jobs = append(view.Jobs, jobCard{
			Title:          sanitizer.StripHTML(j.Title),
			Company:        sanitizer.StripHTML(j.CompanyName),
			Seniority:      seniorityLabel(j.Seniority),
			SeniorityColor: seniorityColor(j.Seniority),
			Location:       sanitizer.StripHTML(formatLocation(j)),
			Type:           formatEmploymentType(sanitizer.StripHTML(j.EmploymentType)),
			Salary:         formatSalary(j.Salary),
			Preview:        sanitizer.Preview(j.Description, sanitizer.PreviewLength),
			URL:            jobURL(r.cfg.SiteURL, j),
			ApplyURL:       safeLink(j.ApplyLink),
		})
	}

	return r.render(jobsLayout, jobsTemplate, view)
}

type letterView struct {
	Brand           string
	SiteURL         string
	Recipient       string
	Title           string
	Location        string
	Date            string
	ShortDate       string
	Stamp           string
	Year            int
	Paragraphs      []string
	UnsubscribeURL  string
	UnsubscribeLink template.HTML
}

// Letter renders the letter of the day. stamp is the send date shown in the footer.
func (r *Renderer) Letter(sel content.LetterSelection, stamp time.Time) (Document, error) {
	if !sel.Found() {
		return Document{}, ErrEmptySelection
	}

	l := sel.Letter
	local := stamp.In(r.location)
	view := letterView{
		Brand:           r.cfg.Brand,
		SiteURL:         r.cfg.SiteURL,
		Recipient:       sanitizer.StripHTML(l.Recipient),
		Title:           sanitizer.StripHTML(l.Title),
		Location:        sanitizer.StripHTML(l.Location),
		Date:            l.Date.Format(longDate),
		ShortDate:       l.Date.Format(shortDate),
		Stamp:           local.Format(longDate),
		Year:            local.Year(),
		UnsubscribeURL:  r.cfg.UnsubscribeURL,
		UnsubscribeLink: unsubscribeLink(r.cfg.UnsubscribeURL),
	}
	if view.Recipient == "" {
		view.Recipient = "Unknown recipient"
	}
	if view.Title == "" {
		view.Title = "Letter to " + view.Recipient
	}
	for _, p := range paragraphs(l.Body) {
		view.Paragraphs = append(view.Paragraphs, sanitizer.StripHTML(p))
	}

	return r.render(letterLayout, letterTemplate, view)
}

func (r *Renderer) render(layout, name string, data any) (Document, error) {
	res, err := r.md.Render(layout, name, data)
	if err != nil {
		return Document{}, errors.Join(ErrRenderFailed, err)
	}
	return Document{
		Subject: res.Subject,
		HTML:    res.HTML,
		Text:    strings.TrimSpace(res.Text) + "\n",
	}, nil
}

// unsubscribeLink is built outside html/template so provider merge tags
// such as {{{RESEND_UNSUBSCRIBE_URL}}} survive URL normalization.
func unsubscribeLink(u string) template.HTML {
	return template.HTML(`<a href="` + html.EscapeString(u) +
		`" style="color:#9ca3af;text-decoration:underline;">Unsubscribe</a>`)
}
