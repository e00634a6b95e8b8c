package dispatch

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/digest/pkg/logger"
)

// LogProvider creates nothing: it logs the campaign and returns a fresh id.
// Used for dry runs and local development.
type LogProvider struct {
	logger *slog.Logger
}

// NewLogProvider creates a LogProvider. A nil logger discards output.
func NewLogProvider(l *slog.Logger) *LogProvider {
	if l == nil {
		l = logger.NewNope()
	}
	return &LogProvider{logger: l}
}

// CreateCampaign implements Provider.
func (p *LogProvider) CreateCampaign(ctx context.Context, c Campaign) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := "log_" + uuid.NewString()
	p.logger.InfoContext(ctx, "campaign (dry run)",
		slog.String("campaign_id", id),
		slog.String("name", c.Name),
		slog.String("subject", c.Subject),
		slog.String("from", c.From),
		slog.String("audience_id", c.AudienceID),
		slog.Int("html_bytes", len(c.HTML)),
		slog.Int("text_bytes", len(c.Text)),
	)
	return id, nil
}
