package calendar_test

import (
	"time"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/shared/daterange"
	"rentcal/internal/domain/shared/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func march(d int) time.Time {
	return date(2024, time.March, d)
}

func rental(id booking.ID, start, end time.Time) booking.Booking {
	return booking.Booking{
		ID:     id,
		Range:  daterange.Of(start, end),
		Status: booking.StatusConfirmed,
		Amount: money.Must(10000, "USD"),
	}
}
