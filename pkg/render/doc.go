// Package render turns selections into self-contained email documents.
//
// Rendering is pure: the only time input is the stamp passed by the caller,
// so the same selection and stamp always produce byte-identical output.
// Free text from the store is never trusted. Job descriptions are stripped
// to plain text and cut to a preview, titles and letter paragraphs are
// escaped for markdown before goldmark runs, and everything placed in the
// layouts goes through html/template escaping.
//
// Templates are embedded (templates/*.md, *.txt and layouts/*.html) and can
// be replaced with WithTemplates.
package render
