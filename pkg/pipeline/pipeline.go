package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/digest/pkg/archive"
	"github.com/dmitrymomot/digest/pkg/content"
	"github.com/dmitrymomot/digest/pkg/dispatch"
	"github.com/dmitrymomot/digest/pkg/logger"
	"github.com/dmitrymomot/digest/pkg/render"
	"github.com/dmitrymomot/digest/pkg/selector"
	"github.com/dmitrymomot/digest/pkg/store"
)

const defaultJobCount = 10

// Session is an open connection to the content store.
type Session interface {
	selector.JobSource
	selector.LetterSource
	Close()
}

// Connector opens store sessions.
type Connector interface {
	Open(ctx context.Context) (Session, error)
}

// ConnectorFunc adapts a function to Connector.
type ConnectorFunc func(ctx context.Context) (Session, error)

func (f ConnectorFunc) Open(ctx context.Context) (Session, error) { return f(ctx) }

// Lock is a lease taken for one kind and day.
type Lock interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// LockFactory creates the lock for a key.
type LockFactory func(key string) Lock

// DispatchLog remembers which days were dispatched.
type DispatchLog interface {
	WasDispatched(ctx context.Context, kind content.Kind, day time.Time) (bool, error)
	RecordDispatch(ctx context.Context, e store.DispatchEntry) error
}

// Archiver stores the web version of a dispatched document.
type Archiver interface {
	Put(ctx context.Context, kind content.Kind, day time.Time, html string) (*archive.Object, error)
}

// Pipeline runs the select, render and dispatch steps for one content kind.
type Pipeline struct {
	connector  Connector
	renderer   *render.Renderer
	dispatcher *dispatch.Dispatcher

	logger          *slog.Logger
	location        *time.Location
	now             func() time.Time
	locks           LockFactory
	dispatchLog     DispatchLog
	archive         Archiver
	kind            content.Kind
	excludedSources []string
	jobCount        int
	runTimeout      time.Duration
}

// New creates a Pipeline for kind.
func New(kind content.Kind, connector Connector, renderer *render.Renderer, dispatcher *dispatch.Dispatcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		connector:  connector,
		renderer:   renderer,
		dispatcher: dispatcher,
		kind:       kind,
		logger:     logger.NewNope(),
		location:   time.UTC,
		now:        time.Now,
		jobCount:   defaultJobCount,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Kind returns the content kind this pipeline distributes.
func (p *Pipeline) Kind() content.Kind { return p.kind }

// Preview is a rendered document that was not dispatched.
type Preview struct {
	Document *render.Document
	Key      string
	Count    int
}

// Empty reports whether there was nothing to render.
func (v *Preview) Empty() bool { return v.Document == nil }

// Run performs one pass. Empty selections and guarded days return a report
// without dispatching.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	if p.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.runTimeout)
		defer cancel()
	}

	now := p.now().In(p.location)
	report := &Report{
		RunID:   uuid.NewString(),
		Kind:    p.kind,
		RunDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.location),
	}
	ctx = logger.WithRunID(ctx, report.RunID)
	log := p.logger.With(slog.String("kind", p.kind.String()))

	// Settings problems surface before any store or provider call.
	if err := p.dispatcher.Validate(dispatch.Request{Subject: "preflight", HTML: "preflight"}); err != nil {
		return nil, err
	}

	if p.locks != nil {
		lock := p.locks(lockKey(p.kind, report.RunDate))
		ok, err := lock.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGuardUnavailable, err)
		}
		if !ok {
			report.Outcome, report.Reason = OutcomeSkipped, ReasonLocked
			log.InfoContext(ctx, "digest run skipped", slog.Any("report", report))
			return report, nil
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				log.WarnContext(ctx, "lock release failed", slog.Any("error", err))
			}
		}()
	}

	if p.dispatchLog != nil {
		done, err := p.dispatchLog.WasDispatched(ctx, p.kind, report.RunDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGuardUnavailable, err)
		}
		if done {
			report.Outcome, report.Reason = OutcomeSkipped, ReasonAlreadyDispatched
			log.InfoContext(ctx, "digest run skipped", slog.Any("report", report))
			return report, nil
		}
	}

	preview, err := p.prepare(ctx, now, now)
	if err != nil {
		return nil, err
	}
	report.Count = preview.Count
	if preview.Empty() {
		report.Outcome = OutcomeNoContent
		log.InfoContext(ctx, "nothing to send", slog.Any("report", report))
		return report, nil
	}
	doc := preview.Document
	report.Subject = doc.Subject

	receipt, err := p.dispatcher.Dispatch(ctx, dispatch.Request{
		Subject: doc.Subject,
		HTML:    doc.HTML,
		Text:    doc.Text,
		Tags: map[string]string{
			"kind":     p.kind.String(),
			"run_date": report.RunDate.Format(time.DateOnly),
		},
	})
	if err != nil {
		return nil, err
	}
	report.Outcome = OutcomeDispatched
	report.Receipt = receipt

	// The campaign exists now; bookkeeping failures are only logged.
	afterCtx := context.WithoutCancel(ctx)
	if p.dispatchLog != nil {
		err := p.dispatchLog.RecordDispatch(afterCtx, store.DispatchEntry{
			RunDate:      report.RunDate,
			DispatchedAt: receipt.CreatedAt,
			Kind:         p.kind,
			CampaignID:   receipt.ID,
			Subject:      doc.Subject,
			Count:        report.Count,
		})
		if err != nil {
			log.WarnContext(ctx, "dispatch log write failed", slog.Any("error", err))
		}
	}
	if p.archive != nil {
		obj, err := p.archive.Put(afterCtx, p.kind, report.RunDate, doc.HTML)
		if err != nil {
			log.WarnContext(ctx, "archive upload failed", slog.Any("error", err))
		} else {
			report.Archive = obj
		}
	}

	log.InfoContext(ctx, "digest dispatched", slog.Any("report", report))
	return report, nil
}

// Preview selects content for the day of at and renders it without
// dispatching. The stamp is the current time.
func (p *Pipeline) Preview(ctx context.Context, at time.Time) (*Preview, error) {
	return p.prepare(ctx, at.In(p.location), p.now().In(p.location))
}

// prepare opens a session, selects content for day and renders it.
// A nil Document means there was nothing to send.
func (p *Pipeline) prepare(ctx context.Context, day, stamp time.Time) (*Preview, error) {
	session, err := p.connector.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", selector.ErrStoreUnavailable, err)
	}
	defer session.Close()

	switch p.kind {
	case content.KindJobs:
		sel, err := selector.NewJobs(session,
			selector.WithExcludedSources(p.excludedSources...),
			selector.WithLocation(p.location),
			selector.WithLogger(p.logger),
		).Select(ctx, p.jobCount)
		if err != nil {
			return nil, err
		}
		if sel.Empty() {
			return &Preview{}, nil
		}
		doc, err := p.renderer.Jobs(sel, stamp)
		if err != nil {
			return nil, err
		}
		return &Preview{Document: &doc, Count: sel.Count()}, nil

	case content.KindLetters:
		sel, err := selector.NewLetters(session,
			selector.WithLocation(p.location),
			selector.WithLogger(p.logger),
		).Today(ctx, day)
		if err != nil {
			return nil, err
		}
		if !sel.Found() {
			return &Preview{Key: sel.Key.String()}, nil
		}
		doc, err := p.renderer.Letter(sel, stamp)
		if err != nil {
			return nil, err
		}
		return &Preview{Document: &doc, Key: sel.Key.String(), Count: 1}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, p.kind)
	}
}

func lockKey(kind content.Kind, day time.Time) string {
	return "digest:" + kind.String() + ":" + day.Format(time.DateOnly)
}
