// Package content defines the records a digest is built from and the
// selections produced for a single run.
//
// Two record kinds exist:
//
//   - JobPosting: a job listing with a plan tier and seniority
//   - Letter: a dated letter that recurs every year on its month-day key
//
// Records are immutable snapshots read from the store at selection time.
// Enumerated fields are validated when rows are read (see ParsePlan and
// ParseSeniority), so code downstream of the store can rely on them.
//
// # Month-day keys
//
// A MonthDay is the zero-padded "MM-DD" form of a calendar date with the
// year dropped. It is what makes a letter recur annually:
//
//	key := content.MonthDayOf(time.Date(1970, time.July, 14, 0, 0, 0, 0, time.UTC))
//	// key == "07-14"
//
// # Selections
//
// JobSelection keeps the ordered picks together with the reason each record
// was included. LetterSelection holds at most one letter; an empty selection
// is a valid outcome, not an error.
package content
