package calendar

import (
	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/shared/money"
)

// GridLayout is everything a renderer needs for one month grid. Overflows
// only lists days with at least one covering booking.
type GridLayout struct {
	Grid      MonthGrid
	Segments  []BarSegment
	Overflows []DayOverflow
}

type Layout struct {
	Window Window
	Grids  []GridLayout
}

// BuildLayout places bookings on every grid of w and aggregates each day.
func BuildLayout(bookings []booking.Booking, w Window, visibleCap int) Layout {
	grids := make([]GridLayout, 0, len(w.Grids))
	for _, grid := range w.Grids {
		inGrid := visibleIn(bookings, grid)
		gl := GridLayout{
			Grid:      grid,
			Segments:  PlaceBookings(inGrid, grid),
			Overflows: make([]DayOverflow, 0),
		}
		if len(inGrid) > 0 {
			for _, cell := range grid.Days {
				overflow := ComputeOverflow(cell.Date, inGrid, visibleCap)
				if overflow.TotalCount > 0 {
					gl.Overflows = append(gl.Overflows, overflow)
				}
			}
		}
		grids = append(grids, gl)
	}
	return Layout{Window: w, Grids: grids}
}

func visibleIn(bookings []booking.Booking, grid MonthGrid) []booking.Booking {
	gridRange := grid.Range()
	out := make([]booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Range.Overlaps(gridRange) {
			out = append(out, b)
		}
	}
	return out
}

// Summary holds dashboard counters for the bookings touching a window.
// Totals are kept per currency.
type Summary struct {
	Count    int
	ByStatus map[booking.Status]int
	Totals   map[string]money.Money
}

// Summarize counts the bookings overlapping the window range.
func Summarize(bookings []booking.Booking, w Window) Summary {
	s := Summary{
		ByStatus: make(map[booking.Status]int, len(booking.Statuses)),
		Totals:   make(map[string]money.Money),
	}
	windowRange := w.Range()
	for _, b := range bookings {
		if !b.Range.Overlaps(windowRange) {
			continue
		}
		s.Count++
		s.ByStatus[b.Status]++
		if b.Amount.Currency == "" {
			continue
		}
		total, err := s.Totals[b.Amount.Currency].Add(b.Amount)
		if err != nil {
			continue
		}
		s.Totals[b.Amount.Currency] = total
	}
	return s
}
