// Package pipeline runs one digest pass: select today's content, render it
// and dispatch it as a single campaign.
//
//	p := pipeline.New(content.KindLetters, connector, renderer, dispatcher,
//		pipeline.WithLocation(loc),
//		pipeline.WithRunTimeout(2*time.Minute),
//		pipeline.WithLogger(log),
//	)
//	report, err := p.Run(ctx)
//
// An empty selection is not an error: the report's outcome is
// OutcomeNoContent and nothing is sent. Errors keep their package sentinels
// (dispatch.ErrConfiguration, selector.ErrStoreUnavailable,
// dispatch.ErrProvider), and Retryable tells schedulers whether another
// attempt may succeed.
//
// WithLock and WithDispatchLog enable the once-per-day guard: a run that
// cannot take the day's lock, or finds the day already recorded, ends with
// OutcomeSkipped. WithArchive uploads the dispatched HTML; archive failures
// are logged and never fail the run.
package pipeline
