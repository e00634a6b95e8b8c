package dispatch

import (
	"context"
	"time"
)

// Sender identifies who a campaign is from.
type Sender struct {
	Name    string
	Address string
}

// Request is a document to be sent to an audience.
type Request struct {
	Sender     Sender
	Subject    string
	HTML       string
	Text       string // optional
	AudienceID string
	Name       string // campaign label, defaults to "Newsletter: <subject>"
	Tags       map[string]string
}

// Receipt confirms a created campaign.
type Receipt struct {
	CreatedAt time.Time
	ID        string
}

// Campaign is what a Provider is asked to create.
type Campaign struct {
	Tags       map[string]string
	Name       string
	Subject    string
	From       string // "Name <address>" or a bare address
	HTML       string
	Text       string
	AudienceID string
}

// Provider creates campaigns with an external email service.
type Provider interface {
	// CreateCampaign creates exactly one campaign and returns its identifier.
	// Rejections caused by deployment settings, such as an unknown audience
	// or an unverified sender, wrap ErrConfiguration.
	CreateCampaign(ctx context.Context, c Campaign) (string, error)
}
