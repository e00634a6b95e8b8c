package resend

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"time"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/digest/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

type options struct {
	baseURL   *url.URL
	transport http.RoundTripper
}

// Option configures the Resend client.
type Option func(*options)

// WithBaseURL points the client at a different API host.
// Invalid URLs are ignored.
func WithBaseURL(raw string) Option {
	return func(o *options) {
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			o.baseURL = u
		}
	}
}

// WithTransport sets the HTTP transport used for API calls.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		if rt != nil {
			o.transport = rt
		}
	}
}

// NewClient builds a Resend API client with an explicit request timeout.
// Shared by the transactional sender and the broadcast provider.
func NewClient(cfg Config, opts ...Option) *resend.Client {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resend.NewCustomClient(&http.Client{Timeout: timeout, Transport: o.transport}, cfg.APIKey)
	if o.baseURL != nil {
		client.BaseURL = o.baseURL
	}
	return client
}

// New creates a new Resend sender.
func New(cfg Config, opts ...Option) *Sender {
	return &Sender{
		client: NewClient(cfg, opts...),
		config: cfg,
	}
}

const defaultTimeout = 15 * time.Second

// From returns the configured sender in "Name <email>" form.
// A SenderEmail that already carries a display name wins over SenderName.
func (c Config) From() string {
	if addr, err := mail.ParseAddress(c.SenderEmail); err == nil && addr.Name != "" {
		return c.SenderEmail
	}
	return mailer.Recipient(c.SenderName, c.SenderEmail)
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = s.config.From()
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	_, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	return nil
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true" // presence-only tag
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
