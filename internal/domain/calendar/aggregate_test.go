package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/calendar"
	"rentcal/internal/domain/shared/money"
)

func fiveOverlapping() []booking.Booking {
	return []booking.Booking{
		rental(1, march(10), march(15)),
		rental(2, march(15), march(15)),
		rental(3, march(1), march(31)),
		rental(4, march(12), march(20)),
		rental(5, march(14), march(16)),
		rental(6, march(16), march(18)),
	}
}

func TestAggregateDay_inclusiveEnds(t *testing.T) {
	got := calendar.AggregateDay(march(15), fiveOverlapping())
	assert.Equal(t, []booking.ID{1, 2, 3, 4, 5}, got)

	assert.Equal(t, []booking.ID{3, 4, 5, 6}, calendar.AggregateDay(march(16), fiveOverlapping()))
	assert.Empty(t, calendar.AggregateDay(march(15), nil))
}

func TestComputeOverflow_caps(t *testing.T) {
	cases := []struct {
		cap   int
		shown []booking.ID
	}{
		{3, []booking.ID{1, 2, 3}},
		{0, []booking.ID{}},
		{-2, []booking.ID{}},
		{5, []booking.ID{1, 2, 3, 4, 5}},
		{10, []booking.ID{1, 2, 3, 4, 5}},
	}
	for _, tc := range cases {
		got := calendar.ComputeOverflow(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC), fiveOverlapping(), tc.cap)

		assert.Equal(t, 5, got.TotalCount, "cap %d", tc.cap)
		assert.Equal(t, tc.shown, got.Shown, "cap %d", tc.cap)
		assert.Equal(t, 5-len(tc.shown), got.Hidden(), "cap %d", tc.cap)
		assert.Equal(t, march(15), got.Date)
	}
}

func TestComputeOverflow_emptyDay(t *testing.T) {
	got := calendar.ComputeOverflow(march(15), nil, calendar.DefaultVisibleCap)

	assert.Zero(t, got.TotalCount)
	assert.Empty(t, got.Shown)
	assert.Zero(t, got.Hidden())
}

func TestBuildLayout(t *testing.T) {
	w, err := calendar.BuildWindow(march(1), time.Time{}, 2)
	require.NoError(t, err)
	bookings := append(fiveOverlapping(), rental(9, date(2024, time.April, 20), date(2024, time.April, 21)))

	layout := calendar.BuildLayout(bookings, w, 2)

	require.Len(t, layout.Grids, 2)
	marchLayout := layout.Grids[0]
	for _, seg := range marchLayout.Segments {
		assert.NotEqual(t, booking.ID(9), seg.BookingID)
	}
	var mid calendar.DayOverflow
	for _, o := range marchLayout.Overflows {
		assert.Positive(t, o.TotalCount)
		if o.Date.Equal(march(15)) {
			mid = o
		}
	}
	assert.Equal(t, 5, mid.TotalCount)
	assert.Equal(t, []booking.ID{1, 2}, mid.Shown)

	aprilLayout := layout.Grids[1]
	var ids []booking.ID
	for _, seg := range aprilLayout.Segments {
		ids = append(ids, seg.BookingID)
	}
	// the April grid starts on March 31, so booking 3 shows one day there
	assert.Equal(t, []booking.ID{3, 9}, ids)
}

func TestBuildLayout_noBookings(t *testing.T) {
	w, err := calendar.BuildWindow(march(1), time.Time{}, 1)
	require.NoError(t, err)

	layout := calendar.BuildLayout(nil, w, calendar.DefaultVisibleCap)

	require.Len(t, layout.Grids, 1)
	assert.Empty(t, layout.Grids[0].Segments)
	assert.Empty(t, layout.Grids[0].Overflows)
}

func TestSummarize(t *testing.T) {
	w, err := calendar.BuildWindow(march(1), time.Time{}, 1)
	require.NoError(t, err)
	pending := rental(2, march(5), march(6))
	pending.Status = booking.StatusPending
	pending.Amount = money.Must(2550, "USD")
	euro := rental(3, march(7), march(8))
	euro.Amount = money.Must(500, "EUR")
	bookings := []booking.Booking{
		rental(1, march(1), march(2)),
		pending,
		euro,
		rental(4, date(2024, time.June, 1), date(2024, time.June, 2)),
		rental(5, march(9), march(1)),
	}

	s := calendar.Summarize(bookings, w)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.ByStatus[booking.StatusConfirmed])
	assert.Equal(t, 1, s.ByStatus[booking.StatusPending])
	assert.Equal(t, int64(12550), s.Totals["USD"].Minor)
	assert.Equal(t, int64(500), s.Totals["EUR"].Minor)
}
