package store

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/digest/pkg/content"
)

type jobRow struct {
	CreatedAt      time.Time `db:"created_at"`
	Salary         *int64    `db:"salary"`
	Slug           *string   `db:"slug"`
	CompanyName    *string   `db:"company_name"`
	Plan           *string   `db:"plan"`
	Source         *string   `db:"source"`
	EmploymentType *string   `db:"employment_type"`
	Country        *string   `db:"country"`
	State          *string   `db:"state"`
	City           *string   `db:"city"`
	ApplyLink      *string   `db:"apply_link"`
	ID             string    `db:"id"`
	Title          string    `db:"title"`
	Seniority      string    `db:"seniority"`
	Description    string    `db:"description"`
}

// toJob validates enum columns; unknown values are rejected here,
// never by the selector.
func (r jobRow) toJob() (content.JobPosting, error) {
	seniority, err := content.ParseSeniority(r.Seniority)
	if err != nil {
		return content.JobPosting{}, fmt.Errorf("job %s: %w", r.ID, err)
	}
	plan, err := content.ParsePlan(deref(r.Plan))
	if err != nil {
		return content.JobPosting{}, fmt.Errorf("job %s: %w", r.ID, err)
	}
	return content.JobPosting{
		ID:             r.ID,
		Slug:           deref(r.Slug),
		Title:          r.Title,
		CompanyName:    deref(r.CompanyName),
		Seniority:      seniority,
		Plan:           plan,
		Source:         deref(r.Source),
		CreatedAt:      r.CreatedAt,
		Description:    r.Description,
		EmploymentType: deref(r.EmploymentType),
		Salary:         r.Salary,
		Country:        deref(r.Country),
		State:          deref(r.State),
		City:           deref(r.City),
		ApplyLink:      deref(r.ApplyLink),
	}, nil
}

type letterRow struct {
	LetterDate time.Time `db:"letter_date"`
	WordCount  *int32    `db:"word_count"`
	YearShort  *string   `db:"year_short"`
	Title      *string   `db:"title"`
	Location   *string   `db:"location"`
	Filename   string    `db:"filename"`
	Recipient  string    `db:"recipient"`
	MonthDay   string    `db:"month_day"`
	Body       string    `db:"body"`
	ID         int64     `db:"id"`
}

func (r letterRow) toLetter() (content.Letter, error) {
	key, err := content.ParseMonthDay(r.MonthDay)
	if err != nil {
		return content.Letter{}, fmt.Errorf("%w: letter %d: %w", content.ErrInvalidRecord, r.ID, err)
	}
	if key != content.MonthDayOf(r.LetterDate) {
		return content.Letter{}, fmt.Errorf("%w: letter %d: month_day %s does not match date %s",
			content.ErrInvalidRecord, r.ID, key, r.LetterDate.Format(time.DateOnly))
	}
	l := content.Letter{
		ID:        r.ID,
		Filename:  r.Filename,
		Recipient: r.Recipient,
		Date:      r.LetterDate,
		MonthDay:  key,
		YearShort: deref(r.YearShort),
		Title:     deref(r.Title),
		Location:  deref(r.Location),
		Body:      r.Body,
	}
	if r.WordCount != nil {
		l.WordCount = int(*r.WordCount)
	}
	return l, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
