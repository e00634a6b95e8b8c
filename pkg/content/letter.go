package content

import (
	"fmt"
	"time"
)

// MonthDay is a year-independent "MM-DD" key.
type MonthDay string

// MonthDayOf returns the key of t in t's own location.
// Callers choose the location; the key never depends on the time of day.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay(fmt.Sprintf("%02d-%02d", int(t.Month()), t.Day()))
}

// ParseMonthDay validates an "MM-DD" key. February 29 is accepted.
func ParseMonthDay(s string) (MonthDay, error) {
	if len(s) != 5 || s[2] != '-' {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthDay, s)
	}
	// 2000 is a leap year, so every valid month-day exists in it.
	t, err := time.Parse("2006-01-02", "2000-"+s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthDay, s)
	}
	return MonthDayOf(t), nil
}

func (m MonthDay) String() string { return string(m) }

// Letter is a dated letter snapshot.
type Letter struct {
	Date      time.Time
	ID        int64
	WordCount int
	MonthDay  MonthDay
	Filename  string
	Recipient string
	YearShort string
	Title     string
	Location  string
	Body      string
}
