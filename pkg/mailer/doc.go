// Package mailer renders markdown email templates and delivers prepared emails.
//
// The package separates email sending (via providers) from template rendering,
// allowing easy swapping of email providers while keeping the same template system.
//
// # Architecture
//
//   - Renderer: Converts markdown templates with YAML frontmatter to HTML
//   - Sender: Interface that email providers implement
//   - Mailer: Validates prepared emails and hands them to a Sender
//
// # Templates
//
// Templates are markdown files with optional YAML frontmatter:
//
//	---
//	Subject: Letter to {{.Recipient}} - {{.Date}}
//	---
//
//	# {{.Title}}
//
//	[!button|Read online]({{.URL}})
//
// The Subject field is executed with the same data as the body. When a file
// with the same base name and a .txt extension sits next to the template,
// it produces the plain text part; otherwise the processed markdown is used.
// Functions passed in RendererConfig.Funcs are available to templates,
// subjects and layouts.
//
// Layouts are html/template files receiving Content (rendered HTML),
// Subject, Metadata and Data (the value passed to Render).
//
// # Buttons
//
// The button extension turns [!button|Label](URL) into an anchor with the
// "btn" class. URLs other than http(s), mailto, relative paths and provider
// merge tags are replaced with "#".
//
// # Errors
//
// Validation failures return ErrNoRecipient, ErrNoSubject or ErrNoContent
// before the Sender is called. Render failures wrap ErrRenderFailed,
// ErrTemplateNotFound or ErrLayoutNotFound.
package mailer
