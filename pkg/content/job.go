package content

import (
	"fmt"
	"time"
)

// Seniority is the experience level a job targets.
type Seniority string

const (
	SeniorityIntern Seniority = "intern"
	SeniorityJunior Seniority = "junior"
	SeniorityMid    Seniority = "mid-level"
	SenioritySenior Seniority = "senior"
)

// ParseSeniority validates a stored seniority value.
func ParseSeniority(s string) (Seniority, error) {
	switch v := Seniority(s); v {
	case SeniorityIntern, SeniorityJunior, SeniorityMid, SenioritySenior:
		return v, nil
	default:
		return "", fmt.Errorf("%w: seniority %q", ErrInvalidRecord, s)
	}
}

// Plan is the distribution tier a job was published under.
// The zero value (PlanUnset) represents a listing without a plan.
type Plan string

const (
	PlanUnset     Plan = ""
	PlanPending   Plan = "pending"
	PlanBasic     Plan = "basic"
	PlanPro       Plan = "pro"
	PlanRecruiter Plan = "recruiter"
	PlanUnlimited Plan = "unlimited"
)

// ParsePlan validates a stored plan value. An empty string maps to PlanUnset.
func ParsePlan(s string) (Plan, error) {
	switch v := Plan(s); v {
	case PlanUnset, PlanPending, PlanBasic, PlanPro, PlanRecruiter, PlanUnlimited:
		return v, nil
	default:
		return "", fmt.Errorf("%w: plan %q", ErrInvalidRecord, s)
	}
}

// IsPriority reports whether the plan guarantees inclusion ahead of general listings.
func (p Plan) IsPriority() bool {
	return p == PlanRecruiter || p == PlanPro
}

// JobPosting is a job listing snapshot.
type JobPosting struct {
	CreatedAt      time.Time
	Salary         *int64 // yearly, EUR
	ID             string
	Slug           string
	Title          string
	CompanyName    string
	Description    string // may contain markup
	EmploymentType string // "Full", "Part", ...
	Country        string
	State          string
	City           string
	ApplyLink      string
	Source         string
	Seniority      Seniority
	Plan           Plan
}
