// Package schedule holds calendar arithmetic for job planning.
package schedule

import (
	"fmt"
	"time"

	"github.com/handydesk/handydesk/internal/shared"
)

// DateLayout is the ISO calendar date format used for job dates.
const DateLayout = "2006-01-02"

// WorkingDays counts the calendar dates in [start, end], both inclusive, that are not
// Sundays. Times of day are ignored; only the calendar date in each value's location
// matters. It returns 0 when end precedes start.
func WorkingDays(start, end time.Time) int {
	from := civilDate(start)
	to := civilDate(end)
	if to.Before(from) {
		return 0
	}
	days := int(to.Sub(from).Hours()/24) + 1
	weeks, rest := days/7, days%7
	count := weeks * 6
	wd := from.Weekday()
	for i := 0; i < rest; i++ {
		if (wd+time.Weekday(i))%7 != time.Sunday {
			count++
		}
	}
	return count
}

// civilDate strips the time of day and maps the result onto UTC so that the
// difference between two dates is an exact multiple of 24h regardless of DST.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", shared.ErrValidation, s)
	}
	return t, nil
}

// WorkingDaysBetween parses two ISO dates and counts the working days between them.
func WorkingDaysBetween(startISO, endISO string) (int, error) {
	start, err := ParseDate(startISO)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endISO)
	if err != nil {
		return 0, err
	}
	return WorkingDays(start, end), nil
}
