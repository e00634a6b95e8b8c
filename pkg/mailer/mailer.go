package mailer

import (
	"context"
	"errors"
	"strings"
)

// Mailer validates prepared emails and hands them to a Sender.
type Mailer struct {
	sender Sender
	config Config
}

// New creates a new Mailer with the given sender.
func New(sender Sender, cfg Config) *Mailer {
	return &Mailer{
		sender: sender,
		config: cfg,
	}
}

// SendRaw sends a pre-built email without template rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}
	if email.Subject == "" {
		return ErrNoSubject
	}
	if email.HTML == "" {
		return ErrNoContent
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	return nil
}

// SendTest delivers a copy of a rendered document to a single address,
// marking the subject with the configured test prefix.
func (m *Mailer) SendTest(ctx context.Context, to, subject, html, text string) error {
	if to == "" {
		return ErrNoRecipient
	}
	if prefix := m.config.TestSubjectPrefix; prefix != "" && !strings.HasPrefix(subject, prefix) {
		subject = prefix + subject
	}
	return m.SendRaw(ctx, &Email{
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		Text:    text,
		Tags:    SimpleTags("test"),
	})
}
