package mailer

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestRenderer_Render_PlainText(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/default.html": &fstest.MapFile{
			Data: []byte(`<html><body>{{.Content}}</body></html>`),
		},
		"welcome.md": &fstest.MapFile{
			Data: []byte(`---
Subject: Welcome {{.Name}}
---
Hello **{{.Name}}**!

Welcome to our service.
`),
		},
	}

	renderer := NewRendererWithConfig(fs, RendererConfig{
		LayoutDir: "layouts",
	})

	result, err := renderer.Render("default.html", "welcome.md", map[string]string{"Name": "Alice"})
	require.NoError(t, err)

	// Without a sibling .txt template, text is the processed markdown
	require.Contains(t, result.Text, "Hello **Alice**!")
	require.Contains(t, result.Text, "Welcome to our service.")
	require.NotContains(t, result.Text, "<strong>", "Text should not contain HTML tags")

	require.Contains(t, result.HTML, "<strong>Alice</strong>")
	require.Equal(t, "Welcome Alice", result.Subject)
}

func TestRenderer_Render_SiblingTextTemplate(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/default.html": &fstest.MapFile{
			Data: []byte(`<html>{{.Content}}</html>`),
		},
		"digest.md": &fstest.MapFile{
			Data: []byte("# Today\n\n[!button|Open]({{.URL}})\n"),
		},
		"digest.txt": &fstest.MapFile{
			Data: []byte("TODAY\n\nOpen: {{.URL}}\n"),
		},
	}

	renderer := NewRenderer(fs)

	result, err := renderer.Render("default.html", "digest.md", map[string]string{"URL": "https://example.com/a"})
	require.NoError(t, err)

	require.Equal(t, "TODAY\n\nOpen: https://example.com/a\n", result.Text)
	require.Contains(t, result.HTML, `<a href="https://example.com/a" class="btn">Open</a>`)
	require.Empty(t, result.Subject)
}

func TestRenderer_Render_FuncsAndLayoutData(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/default.html": &fstest.MapFile{
			Data: []byte(`<title>{{.Subject}}</title><p>{{shout .Data.Brand}}</p>{{.Content}}`),
		},
		"note.md": &fstest.MapFile{
			Data: []byte("---\nSubject: \"{{shout .Brand}} daily\"\n---\n{{shout .Brand}}\n"),
		},
	}

	renderer := NewRendererWithConfig(fs, RendererConfig{
		Funcs: map[string]any{"shout": strings.ToUpper},
	})

	result, err := renderer.Render("default.html", "note.md", map[string]string{"Brand": "<acme>"})
	require.NoError(t, err)

	require.Equal(t, "<ACME> daily", result.Subject)
	// Layout output is escaped by html/template
	require.Contains(t, result.HTML, "<title>&lt;ACME&gt; daily</title>")
	require.Contains(t, result.HTML, "<p>&lt;ACME&gt;</p>")
	// Raw HTML in markdown is omitted by goldmark
	require.NotContains(t, result.HTML, "<ACME>")
}

func TestRenderer_Render_Errors(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/default.html": &fstest.MapFile{Data: []byte(`{{.Content}}`)},
		"ok.md":                &fstest.MapFile{Data: []byte("hi")},
		"broken.md":            &fstest.MapFile{Data: []byte("{{.Missing")},
	}
	renderer := NewRenderer(fs)

	_, err := renderer.Render("default.html", "absent.md", nil)
	require.ErrorIs(t, err, ErrTemplateNotFound)

	_, err = renderer.Render("absent.html", "ok.md", nil)
	require.ErrorIs(t, err, ErrLayoutNotFound)

	_, err = renderer.Render("default.html", "broken.md", nil)
	require.ErrorIs(t, err, ErrRenderFailed)
}

func TestRenderer_Render_CachesTemplates(t *testing.T) {
	t.Parallel()

	var openCount atomic.Int32

	// Custom FS that counts Open calls
	cfs := &countingFS{
		MapFS: fstest.MapFS{
			"layouts/default.html": &fstest.MapFile{
				Data: []byte(`<html>{{.Content}}</html>`),
			},
			"email.md": &fstest.MapFile{
				Data: []byte(`---
Subject: Test
---
Hello {{.Name}}
`),
			},
			"email.txt": &fstest.MapFile{
				Data: []byte(`Hello {{.Name}}`),
			},
		},
		openCount: &openCount,
	}

	renderer := NewRendererWithConfig(cfs, RendererConfig{
		LayoutDir: "layouts",
	})

	// First render - template, text template and layout
	_, err := renderer.Render("default.html", "email.md", map[string]string{"Name": "Alice"})
	require.NoError(t, err)
	firstOpenCount := openCount.Load()
	require.Equal(t, int32(3), firstOpenCount, "Should have opened 3 files (template + text + layout)")

	// Second render - should use cache, no additional opens
	_, err = renderer.Render("default.html", "email.md", map[string]string{"Name": "Bob"})
	require.NoError(t, err)
	secondOpenCount := openCount.Load()
	require.Equal(t, firstOpenCount, secondOpenCount, "Should not open files again (cached)")

	// Third render with different layout - should open layout file only
	cfs.MapFS["layouts/other.html"] = &fstest.MapFile{
		Data: []byte(`<div>{{.Content}}</div>`),
	}
	_, err = renderer.Render("other.html", "email.md", map[string]string{"Name": "Charlie"})
	require.NoError(t, err)
	thirdOpenCount := openCount.Load()
	require.Equal(t, int32(4), thirdOpenCount, "Should open only the new layout file")
}

func TestRenderer_Render_DifferentDataProducesDifferentOutput(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/default.html": &fstest.MapFile{
			Data: []byte(`<html>{{.Content}}</html>`),
		},
		"greeting.md": &fstest.MapFile{
			Data: []byte(`---
Subject: Hello
---
Welcome {{.Name}}!
`),
		},
	}

	renderer := NewRendererWithConfig(fs, RendererConfig{
		LayoutDir: "layouts",
	})

	result1, err := renderer.Render("default.html", "greeting.md", map[string]string{"Name": "Alice"})
	require.NoError(t, err)

	result2, err := renderer.Render("default.html", "greeting.md", map[string]string{"Name": "Bob"})
	require.NoError(t, err)

	require.Contains(t, result1.Text, "Welcome Alice!")
	require.Contains(t, result2.Text, "Welcome Bob!")
	require.NotEqual(t, result1.Text, result2.Text)
	require.NotEqual(t, result1.HTML, result2.HTML)
}

func TestRenderer_Render_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	fs := fstest.MapFS{
		"layouts/default.html": &fstest.MapFile{
			Data: []byte(`<html>{{.Content}}</html>`),
		},
		"email.md": &fstest.MapFile{
			Data: []byte(`---
Subject: Test
---
Hello {{.ID}}
`),
		},
	}

	renderer := NewRendererWithConfig(fs, RendererConfig{
		LayoutDir: "layouts",
	})

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := range 100 {
		wg.Go(func() {
			result, err := renderer.Render("default.html", "email.md", map[string]int{"ID": i})
			if err != nil {
				errs <- err
				return
			}
			if result.Text == "" || result.HTML == "" {
				errs <- ErrRenderFailed
			}
		})
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent render failed: %v", err)
	}
}

// countingFS wraps MapFS and counts ReadFile calls.
type countingFS struct {
	fstest.MapFS
	openCount *atomic.Int32
}

func (c *countingFS) ReadFile(name string) ([]byte, error) {
	c.openCount.Add(1)
	return c.MapFS.ReadFile(name)
}
