package pipeline

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/digest/pkg/archive"
	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/dispatch"
)

// Outcome is how a run ended when it did not fail.
type Outcome string

const (
	OutcomeDispatched Outcome = "dispatched"
	OutcomeNoContent  Outcome = "no_content"
	OutcomeSkipped    Outcome = "skipped"
)

// Skip reasons.
const (
	ReasonLocked            = "locked"
	ReasonAlreadyDispatched = "already_dispatched"
)

// Report summarises a run.
type Report struct {
	RunDate time.Time
	Receipt *dispatch.Receipt
	Archive *archive.Object
	RunID   string
	Kind    content.Kind
	Outcome Outcome
	Reason  string
	Subject string
	Count   int
}

// LogValue renders the report as grouped log attributes.
func (r *Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("kind", r.Kind.String()),
		slog.String("outcome", string(r.Outcome)),
		slog.String("run_date", r.RunDate.Format(time.DateOnly)),
		slog.Int("count", r.Count),
	}
	if r.Reason != "" {
		attrs = append(attrs, slog.String("reason", r.Reason))
	}
	if r.Receipt != nil {
		attrs = append(attrs, slog.String("campaign_id", r.Receipt.ID))
	}
	if r.Archive != nil {
		attrs = append(attrs, slog.String("archive_url", r.Archive.URL))
	}
	return slog.GroupValue(attrs...)
}
