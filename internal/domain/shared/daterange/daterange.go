package daterange

import (
	"errors"
	"time"
)

const layout = "2006-01-02"

var (
	ErrInvalidRange = errors.New("daterange: end must not be before start")
	ErrInvalidDate  = errors.New("daterange: invalid calendar date")
)

// Day truncates t to its calendar day. Year, month and day are read in t's own
// location and the result is midnight UTC, so two values naming the same local
// day compare equal regardless of their zones.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD calendar date.
func Parse(raw string) (time.Time, error) {
	t, err := time.Parse(layout, raw)
	if err != nil {
		return time.Time{}, errors.Join(ErrInvalidDate, err)
	}
	return t, nil
}

// Format renders a calendar date as YYYY-MM-DD.
func Format(t time.Time) string {
	return Day(t).Format(layout)
}

// DaysBetween returns the signed number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// DateRange represents an inclusive interval [Start, End] of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := Of(start, end)
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// Of builds a range without validating it. Malformed ranges report Empty.
func Of(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if dr.Empty() {
		return ErrInvalidRange
	}
	return nil
}

// Empty reports whether the range covers no days (End before Start).
func (dr DateRange) Empty() bool {
	return Day(dr.End).Before(Day(dr.Start))
}

// Days is the number of calendar days covered, zero for an empty range.
func (dr DateRange) Days() int {
	if dr.Empty() {
		return 0
	}
	return DaysBetween(dr.Start, dr.End) + 1
}

func (dr DateRange) ContainsDay(t time.Time) bool {
	if dr.Empty() {
		return false
	}
	day := Day(t)
	return !day.Before(Day(dr.Start)) && !day.After(Day(dr.End))
}

func (dr DateRange) Overlaps(other DateRange) bool {
	if dr.Empty() || other.Empty() {
		return false
	}
	return !Day(dr.Start).After(Day(other.End)) && !Day(other.Start).After(Day(dr.End))
}

// Intersect returns the days shared by both ranges.
func (dr DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !dr.Overlaps(other) {
		return DateRange{}, false
	}
	start := Day(dr.Start)
	if s := Day(other.Start); s.After(start) {
		start = s
	}
	end := Day(dr.End)
	if e := Day(other.End); e.Before(end) {
		end = e
	}
	return DateRange{Start: start, End: end}, true
}
