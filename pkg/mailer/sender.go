package mailer

import "context"

// Sender delivers a validated Email through a provider API.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}
