package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrymomot/digest/pkg/logger"
)

// Dispatcher validates requests and creates one campaign per call.
type Dispatcher struct {
	provider        Provider
	logger          *slog.Logger
	now             func() time.Time
	defaultSender   Sender
	defaultAudience string
}

// New creates a Dispatcher on top of provider.
func New(provider Provider, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		provider: provider,
		logger:   logger.NewNope(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch validates req and creates a campaign for it.
// Configuration problems are reported before any provider call.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Receipt, error) {
	campaign, err := d.campaign(req)
	if err != nil {
		return nil, err
	}

	id, err := d.provider.CreateCampaign(ctx, campaign)
	if err != nil {
		d.logger.ErrorContext(ctx, "campaign creation failed",
			slog.String("campaign", campaign.Name),
			slog.Any("error", err),
		)
		if errors.Is(err, ErrConfiguration) {
			return nil, err
		}
		return nil, errors.Join(ErrProvider, err)
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty campaign id", ErrProvider)
	}

	receipt := &Receipt{ID: id, CreatedAt: d.now().UTC()}
	d.logger.InfoContext(ctx, "campaign created",
		slog.String("campaign_id", receipt.ID),
		slog.String("campaign", campaign.Name),
		slog.String("audience_id", campaign.AudienceID),
	)

	return receipt, nil
}

// Validate reports configuration and request problems without dispatching.
func (d *Dispatcher) Validate(req Request) error {
	_, err := d.campaign(req)
	return err
}

func (d *Dispatcher) campaign(req Request) (Campaign, error) {
	if req.Sender.Address == "" {
		req.Sender = d.defaultSender
	}
	if req.AudienceID == "" {
		req.AudienceID = d.defaultAudience
	}

	audience := strings.TrimSpace(req.AudienceID)
	if audience == "" {
		return Campaign{}, fmt.Errorf("%w: audience id is required", ErrConfiguration)
	}
	from, err := formatSender(req.Sender)
	if err != nil {
		return Campaign{}, err
	}
	if strings.TrimSpace(req.Subject) == "" {
		return Campaign{}, fmt.Errorf("%w: subject is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return Campaign{}, fmt.Errorf("%w: html body is required", ErrInvalidRequest)
	}

	name := req.Name
	if name == "" {
		name = "Newsletter: " + req.Subject
	}

	return Campaign{
		Name:       name,
		Subject:    req.Subject,
		From:       from,
		HTML:       req.HTML,
		Text:       req.Text,
		AudienceID: audience,
		Tags:       req.Tags,
	}, nil
}

// formatSender validates the sender address and renders it as "Name <address>".
// An address that already carries a display name keeps it unless Name is set.
func formatSender(s Sender) (string, error) {
	raw := strings.TrimSpace(s.Address)
	if raw == "" {
		return "", fmt.Errorf("%w: sender address is required", ErrConfiguration)
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", fmt.Errorf("%w: sender address %q: %v", ErrConfiguration, raw, err)
	}
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = addr.Name
	}
	if name == "" {
		return addr.Address, nil
	}
	return name + " <" + addr.Address + ">", nil
}
