package calendar

import (
	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/shared/daterange"
)

// BarSegment is the part of a booking visible in one week row of a grid.
// ClippedStart/ClippedEnd mark segments that continue into the previous or
// next row, or past the grid edge.
type BarSegment struct {
	BookingID    booking.ID
	Row          int
	StartColumn  int
	ColumnSpan   int
	ClippedStart bool
	ClippedEnd   bool
}

// PlaceBookings maps every booking onto grid rows in input order. Bookings
// outside the grid and malformed ranges contribute nothing. Overlapping bars
// are returned as-is; stacking is left to the renderer.
func PlaceBookings(bookings []booking.Booking, grid MonthGrid) []BarSegment {
	segments := make([]BarSegment, 0, len(bookings))
	for _, b := range bookings {
		segments = append(segments, PlaceBooking(b, grid)...)
	}
	return segments
}

// PlaceBooking splits one booking at week boundaries within grid.
func PlaceBooking(b booking.Booking, grid MonthGrid) []BarSegment {
	visible, ok := b.Range.Intersect(grid.Range())
	if !ok {
		return nil
	}
	startIdx, _ := grid.IndexOf(visible.Start)
	endIdx, _ := grid.IndexOf(visible.End)
	clippedLeft := visible.Start.After(daterange.Day(b.Range.Start))
	clippedRight := visible.End.Before(daterange.Day(b.Range.End))

	var segments []BarSegment
	for idx := startIdx; idx <= endIdx; {
		row := idx / DaysPerWeek
		rowEnd := row*DaysPerWeek + DaysPerWeek - 1
		last := min(endIdx, rowEnd)
		segments = append(segments, BarSegment{
			BookingID:    b.ID,
			Row:          row,
			StartColumn:  idx % DaysPerWeek,
			ColumnSpan:   last - idx + 1,
			ClippedStart: idx > startIdx || clippedLeft,
			ClippedEnd:   last < endIdx || clippedRight,
		})
		idx = last + 1
	}
	return segments
}
