package shared

import (
	"time"

	"pawnshop-backoffice/pkg/accounting"
)

// Clock yields "now" in the business time zone, so Today is the shop's
// calendar date rather than the server's.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc, now: time.Now}
}

// FixedClock always reports t.
func FixedClock(t time.Time, loc *time.Location) Clock {
	c := NewClock(loc)
	c.now = func() time.Time { return t }
	return c
}

func (c Clock) Now() time.Time {
	if c.now == nil {
		return time.Now().UTC()
	}
	return c.now().In(c.loc)
}

// Today is the civil date of Now, stored as UTC midnight.
func (c Clock) Today() time.Time { return accounting.CivilDate(c.Now()) }

// DayRange is [start, end) of the business day holding the civil date d.
func (c Clock) DayRange(d time.Time) (start, end time.Time) {
	loc := c.loc
	if loc == nil {
		loc = time.UTC
	}
	start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
