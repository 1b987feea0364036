package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rentcal/internal/domain/shared/daterange"
)

const (
	MinWindowSize = 1
	MaxWindowSize = 3
)

var (
	ErrInvalidWindowSize = errors.New("calendar: window size must be between 1 and 3")
	ErrInvalidDirection  = errors.New("calendar: direction must be prev or next")
)

type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(raw))); d {
	case DirectionPrev, DirectionNext:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, raw)
	}
}

// Window is a run of consecutive month grids starting at Anchor.
type Window struct {
	Anchor time.Time
	Size   int
	Grids  []MonthGrid
	Label  string
}

// ValidateWindowSize fails for sizes outside MinWindowSize..MaxWindowSize.
func ValidateWindowSize(size int) error {
	if size < MinWindowSize || size > MaxWindowSize {
		return fmt.Errorf("%w: got %d", ErrInvalidWindowSize, size)
	}
	return nil
}

// BuildWindow builds size grids starting with the month of anchor.
func BuildWindow(anchor, today time.Time, size int) (Window, error) {
	if err := ValidateWindowSize(size); err != nil {
		return Window{}, err
	}
	first := monthStart(anchor)
	grids := make([]MonthGrid, 0, size)
	for i := 0; i < size; i++ {
		grids = append(grids, BuildMonthGrid(first.AddDate(0, i, 0), today))
	}
	return Window{
		Anchor: first,
		Size:   size,
		Grids:  grids,
		Label:  windowLabel(first, size),
	}, nil
}

// Navigate moves the anchor by exactly size months. The result is the first
// day of the new anchor month.
func Navigate(dir Direction, anchor time.Time, size int) (time.Time, error) {
	if err := ValidateWindowSize(size); err != nil {
		return time.Time{}, err
	}
	step := size
	switch dir {
	case DirectionNext:
	case DirectionPrev:
		step = -size
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	return monthStart(anchor).AddDate(0, step, 0), nil
}

// Range spans from the first cell of the first grid to the last cell of the
// last grid.
func (w Window) Range() daterange.DateRange {
	if len(w.Grids) == 0 {
		return daterange.DateRange{}
	}
	return daterange.DateRange{Start: w.Grids[0].First(), End: w.Grids[len(w.Grids)-1].Last()}
}

func windowLabel(first time.Time, size int) string {
	label := monthLabel(first)
	if size > 1 {
		label += " - " + monthLabel(first.AddDate(0, size-1, 0))
	}
	return label
}

func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", t.Month(), t.Year())
}
