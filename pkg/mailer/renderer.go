package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// Renderer converts markdown templates with YAML frontmatter to HTML.
type Renderer struct {
	fs    fs.FS
	md    goldmark.Markdown // cached markdown processor
	funcs map[string]any

	// Caches (safe: stores parsed structure, not rendered output)
	templateCache map[string]*cachedTemplate
	layoutCache   map[string]*template.Template
	templateDir   string
	layoutDir     string

	mu sync.RWMutex
}

// cachedTemplate holds parsed template data for reuse.
type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
	subject  *texttemplate.Template // nil when frontmatter has no Subject
	text     *texttemplate.Template // nil when no sibling .txt template exists
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	Funcs       map[string]any // Available to templates, subjects and layouts
	TemplateDir string         // Default: "."
	LayoutDir   string         // Default: "layouts"
}

// NewRenderer creates a new renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a new renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, opts RendererConfig) *Renderer {
	if opts.TemplateDir == "" {
		opts.TemplateDir = "."
	}
	if opts.LayoutDir == "" {
		opts.LayoutDir = "layouts"
	}
	if opts.Funcs == nil {
		opts.Funcs = map[string]any{}
	}

	return &Renderer{
		fs:          filesystem,
		funcs:       opts.Funcs,
		templateDir: opts.TemplateDir,
		layoutDir:   opts.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(NewButtonExtension()),
		),
		templateCache: make(map[string]*cachedTemplate),
		layoutCache:   make(map[string]*template.Template),
	}
}

// RenderResult contains the rendered subject, HTML, plain text, and extracted metadata.
type RenderResult struct {
	Metadata map[string]any
	Subject  string // Executed "Subject" frontmatter field, empty if absent
	HTML     string
	Text     string // Sibling .txt template output, or processed markdown
}

// Render processes a markdown template with layout.
// The layout receives Content, Subject, Metadata and Data.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	// Get cached template (or parse and cache)
	cached, err := r.getTemplate(templateName)
	if err != nil {
		return nil, err
	}

	// Execute template with fresh data
	var processedMarkdown bytes.Buffer
	if err := cached.tmpl.Execute(&processedMarkdown, data); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template: %v", ErrRenderFailed, err)
	}

	plainText := processedMarkdown.String()
	if cached.text != nil {
		var buf bytes.Buffer
		if err := cached.text.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("%w: failed to execute text template: %v", ErrRenderFailed, err)
		}
		plainText = buf.String()
	}

	var subject string
	if cached.subject != nil {
		var buf bytes.Buffer
		if err := cached.subject.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("%w: failed to execute subject: %v", ErrRenderFailed, err)
		}
		subject = strings.TrimSpace(buf.String())
	}

	// Convert to HTML
	var htmlContent bytes.Buffer
	if err := r.md.Convert(processedMarkdown.Bytes(), &htmlContent); err != nil {
		return nil, fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	// Get cached layout (or parse and cache)
	layoutTmpl, err := r.getLayout(layout)
	if err != nil {
		return nil, err
	}

	// Execute layout with fresh content
	var finalHTML bytes.Buffer
	layoutData := map[string]any{
		"Content":  template.HTML(htmlContent.String()),
		"Subject":  subject,
		"Metadata": cached.metadata,
		"Data":     data,
	}

	if err := layoutTmpl.Execute(&finalHTML, layoutData); err != nil {
		return nil, fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}

	return &RenderResult{
		HTML:     finalHTML.String(),
		Text:     plainText,
		Subject:  subject,
		Metadata: cached.metadata,
	}, nil
}

// getTemplate returns a cached template or parses and caches it.
func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	if cached, ok := r.templateCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	// Parse and cache
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := r.templateCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	meta, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	tmpl, err := texttemplate.New(name).Funcs(r.funcs).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse template body: %v", ErrRenderFailed, err)
	}

	cached := &cachedTemplate{metadata: meta, tmpl: tmpl}

	if subject, ok := meta["Subject"].(string); ok {
		cached.subject, err = texttemplate.New(name + ":subject").Funcs(r.funcs).Parse(subject)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse subject: %v", ErrRenderFailed, err)
		}
	}

	textName := strings.TrimSuffix(name, path.Ext(name)) + ".txt"
	textContent, err := fs.ReadFile(r.fs, path.Join(r.templateDir, textName))
	switch {
	case err == nil:
		cached.text, err = texttemplate.New(textName).Funcs(r.funcs).Parse(string(textContent))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse text template: %v", ErrRenderFailed, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, textName, err)
	}

	r.templateCache[name] = cached
	return cached, nil
}

// getLayout returns a cached layout template or parses and caches it.
func (r *Renderer) getLayout(name string) (*template.Template, error) {
	r.mu.RLock()
	if cached, ok := r.layoutCache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	// Parse and cache
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := r.layoutCache[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}

	layoutTmpl, err := template.New(name).Funcs(template.FuncMap(r.funcs)).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout: %v", ErrRenderFailed, err)
	}

	r.layoutCache[name] = layoutTmpl
	return layoutTmpl, nil
}
