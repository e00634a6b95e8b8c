// Package selector decides which records make up a day's digest.
//
// Two policies are provided:
//
//   - Letters: temporal key lookup. Today's date is reduced to its "MM-DD"
//     key in a fixed location and exactly one letter with that key is taken.
//   - Jobs: two-tier weighted recency. Up to N priority-plan jobs are taken
//     first, then the remaining slots are filled with the most recent general
//     listings. Pending listings never qualify.
//
// Policies are expressed as pure JobQuery values composed by the selector
// and executed by a JobSource or LetterSource implementation (see pkg/store).
//
// # Usage
//
//	jobs := selector.NewJobs(session,
//		selector.WithExcludedSources("eu-institution", "eu-rss"),
//	)
//	sel, err := jobs.Select(ctx, 10)
//
//	letters := selector.NewLetters(session, selector.WithLocation(loc))
//	today, err := letters.Today(ctx, time.Now())
//	if !today.Found() {
//		// nothing to send today
//	}
//
// # Errors
//
// Store failures are wrapped with ErrStoreUnavailable. A missing letter is
// not an error: the returned selection reports Found() == false.
package selector
