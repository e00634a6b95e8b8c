// Package resend creates dispatch campaigns as Resend broadcasts.
package resend

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/digest/pkg/dispatch"
	"github.com/dmitrymomot/digest/pkg/logger"
	mailresend "github.com/dmitrymomot/digest/pkg/mailer/resend"
)

// Config holds broadcast settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	mailresend.Config

	// AutoSend sends the broadcast right after creating it.
	AutoSend bool `env:"DISPATCH_AUTO_SEND" envDefault:"false"`
}

// Provider implements dispatch.Provider with the Resend Broadcasts API.
// API rejections with status 400, 401, 403, 404 or 422 wrap
// dispatch.ErrConfiguration; everything else is left to the dispatcher.
type Provider struct {
	client     *resend.Client
	logger     *slog.Logger
	autoSend   bool
	clientOpts []mailresend.Option
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClientOptions configures the underlying API client, e.g. to point it
// at a test server.
func WithClientOptions(opts ...mailresend.Option) Option {
	return func(p *Provider) {
		p.clientOpts = append(p.clientOpts, opts...)
	}
}

// New creates a broadcast provider.
func New(cfg Config, opts ...Option) *Provider {
	p := &Provider{
		logger:   logger.NewNope(),
		autoSend: cfg.AutoSend,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = mailresend.NewClient(cfg.Config,
		append(p.clientOpts, mailresend.WithTransport(statusTransport{next: http.DefaultTransport}))...)
	return p
}

// CreateCampaign implements dispatch.Provider.
func (p *Provider) CreateCampaign(ctx context.Context, c dispatch.Campaign) (string, error) {
	callCtx, status := withStatus(ctx)
	resp, err := p.client.Broadcasts.CreateWithContext(callCtx, &resend.CreateBroadcastRequest{
		Name:       c.Name,
		AudienceId: c.AudienceID,
		From:       c.From,
		Subject:    c.Subject,
		Html:       c.HTML,
		Text:       c.Text,
	})
	if err != nil {
		return "", classify("create broadcast", *status, err)
	}

	id := resp.Id
	if !p.autoSend || id == "" {
		return id, nil
	}

	// The broadcast exists at this point; a send failure must not hide its id.
	if _, err := p.client.Broadcasts.SendWithContext(ctx, &resend.SendBroadcastRequest{BroadcastId: id}); err != nil {
		p.logger.WarnContext(ctx, "broadcast created but not sent",
			slog.String("broadcast_id", id),
			slog.Any("error", err),
		)
		return id, nil
	}
	p.logger.InfoContext(ctx, "broadcast sent", slog.String("broadcast_id", id))

	return id, nil
}
