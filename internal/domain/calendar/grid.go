// Package calendar lays bookings out on month grids. Every function here is
// pure: callers supply the bookings, the visible window and "today", and get
// back plain values ready for rendering.
package calendar

import (
	"time"

	"rentcal/internal/domain/shared/daterange"
)

const (
	DaysPerWeek  = 7
	WeeksPerGrid = 6
	CellsPerGrid = DaysPerWeek * WeeksPerGrid
)

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date    time.Time
	InMonth bool
	IsToday bool
}

// MonthGrid is six full Sunday-first weeks around an anchor month. Grids always
// hold CellsPerGrid days so row arithmetic is identical for every month.
type MonthGrid struct {
	Year  int
	Month time.Month
	Days  []CalendarDay
}

// BuildMonthGrid builds the grid for the month containing anchor. Only the
// anchor's year and month are used; today only drives highlighting.
func BuildMonthGrid(anchor, today time.Time) MonthGrid {
	first := monthStart(anchor)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	todayDay := daterange.Day(today)

	days := make([]CalendarDay, CellsPerGrid)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = CalendarDay{
			Date:    d,
			InMonth: d.Month() == first.Month(),
			IsToday: !today.IsZero() && d.Equal(todayDay),
		}
	}
	return MonthGrid{Year: first.Year(), Month: first.Month(), Days: days}
}

// First is the grid's first cell date, zero for an empty grid.
func (g MonthGrid) First() time.Time {
	if len(g.Days) == 0 {
		return time.Time{}
	}
	return g.Days[0].Date
}

// Last is the grid's last cell date, zero for an empty grid.
func (g MonthGrid) Last() time.Time {
	if len(g.Days) == 0 {
		return time.Time{}
	}
	return g.Days[len(g.Days)-1].Date
}

// Range covers every cell of the grid, including adjacent-month days.
func (g MonthGrid) Range() daterange.DateRange {
	return daterange.DateRange{Start: g.First(), End: g.Last()}
}

// IndexOf returns the cell position of day.
func (g MonthGrid) IndexOf(day time.Time) (int, bool) {
	if len(g.Days) == 0 {
		return 0, false
	}
	idx := daterange.DaysBetween(g.First(), day)
	if idx < 0 || idx >= len(g.Days) {
		return 0, false
	}
	return idx, true
}

// Rows splits the grid into weeks.
func (g MonthGrid) Rows() [][]CalendarDay {
	rows := make([][]CalendarDay, 0, len(g.Days)/DaysPerWeek)
	for i := 0; i+DaysPerWeek <= len(g.Days); i += DaysPerWeek {
		rows = append(rows, g.Days[i:i+DaysPerWeek])
	}
	return rows
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
