package content

// Reason explains why a record was included in a selection.
type Reason string

const (
	// ReasonPriorityPlan marks jobs published under a recruiter or pro plan.
	ReasonPriorityPlan Reason = "priority-plan"
	// ReasonRecent marks general listings that filled the remaining slots.
	ReasonRecent Reason = "recent"
	// ReasonMonthDayMatch marks a letter whose key equals today's key.
	ReasonMonthDayMatch Reason = "month-day-match"
	// ReasonNoContent marks an empty letter selection.
	ReasonNoContent Reason = "no-content"
)

// JobPick is a selected job with the reason it was included.
type JobPick struct {
	Reason Reason
	Job    JobPosting
}

// JobSelection is the ordered result of the job policy.
type JobSelection struct {
	Picks     []JobPick
	Requested int
}

// Count returns the number of selected jobs.
func (s JobSelection) Count() int { return len(s.Picks) }

// Empty reports whether nothing was selected.
func (s JobSelection) Empty() bool { return len(s.Picks) == 0 }

// Jobs returns the selected jobs in order.
func (s JobSelection) Jobs() []JobPosting {
	jobs := make([]JobPosting, len(s.Picks))
	for i, p := range s.Picks {
		jobs[i] = p.Job
	}
	return jobs
}

// LetterSelection is the result of the letter policy for one key.
type LetterSelection struct {
	Letter *Letter
	Key    MonthDay
	Reason Reason
}

// Found reports whether a letter was selected.
func (s LetterSelection) Found() bool { return s.Letter != nil }
