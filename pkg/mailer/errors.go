package mailer

import "errors"

var (
	ErrNoRecipient = errors.New("mailer: no recipient")
	ErrNoSubject   = errors.New("mailer: empty subject")
	ErrNoContent   = errors.New("mailer: empty html body")
	ErrSendFailed  = errors.New("mailer: send failed")

	// ErrTemplateNotFound and ErrLayoutNotFound wrap fs lookups that failed.
	ErrTemplateNotFound = errors.New("mailer: template not found")
	ErrLayoutNotFound   = errors.New("mailer: layout not found")

	ErrRenderFailed       = errors.New("mailer: render failed")
	ErrInvalidFrontmatter = errors.New("mailer: invalid frontmatter")
)
