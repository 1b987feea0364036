package calendar

import (
	"time"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/shared/daterange"
)

// DefaultVisibleCap is how many indicator marks a day shows before "+N more".
const DefaultVisibleCap = 3

// DayOverflow describes the bookings covering one day. Shown holds at most the
// visible cap ids in input order; TotalCount is always the true count.
type DayOverflow struct {
	Date       time.Time
	Shown      []booking.ID
	TotalCount int
}

// Hidden is the number of covering bookings beyond the visible cap.
func (o DayOverflow) Hidden() int {
	return o.TotalCount - len(o.Shown)
}

// AggregateDay returns the ids of every booking covering day, in input order.
func AggregateDay(day time.Time, bookings []booking.Booking) []booking.ID {
	ids := make([]booking.ID, 0)
	for _, b := range bookings {
		if b.Covers(day) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// ComputeOverflow caps the covering bookings of day at visibleCap. Negative
// caps behave like zero.
func ComputeOverflow(day time.Time, bookings []booking.Booking, visibleCap int) DayOverflow {
	ids := AggregateDay(day, bookings)
	shown := min(max(visibleCap, 0), len(ids))
	return DayOverflow{
		Date:       daterange.Day(day),
		Shown:      ids[:shown:shown],
		TotalCount: len(ids),
	}
}
