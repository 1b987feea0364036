package calendar_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/calendar"
	"rentcal/internal/domain/shared/daterange"
)

func marchGrid() calendar.MonthGrid {
	return calendar.BuildMonthGrid(march(1), time.Time{})
}

func TestPlaceBooking_cases(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []calendar.BarSegment
	}{
		{
			name:  "single day",
			start: march(13),
			end:   march(13),
			want:  []calendar.BarSegment{{BookingID: 1, Row: 2, StartColumn: 3, ColumnSpan: 1}},
		},
		{
			name:  "full week starting sunday",
			start: march(3),
			end:   march(9),
			want:  []calendar.BarSegment{{BookingID: 1, Row: 1, StartColumn: 0, ColumnSpan: 7}},
		},
		{
			name:  "eight days from wednesday",
			start: march(6),
			end:   march(13),
			want: []calendar.BarSegment{
				{BookingID: 1, Row: 1, StartColumn: 3, ColumnSpan: 4, ClippedEnd: true},
				{BookingID: 1, Row: 2, StartColumn: 0, ColumnSpan: 4, ClippedStart: true},
			},
		},
		{
			name:  "thirteen days",
			start: march(10),
			end:   march(22),
			want: []calendar.BarSegment{
				{BookingID: 1, Row: 2, StartColumn: 0, ColumnSpan: 7, ClippedEnd: true},
				{BookingID: 1, Row: 3, StartColumn: 0, ColumnSpan: 6, ClippedStart: true},
			},
		},
		{
			name:  "starts before grid",
			start: date(2024, time.February, 20),
			end:   march(2),
			want:  []calendar.BarSegment{{BookingID: 1, Row: 0, StartColumn: 0, ColumnSpan: 7, ClippedStart: true}},
		},
		{
			name:  "ends after grid",
			start: date(2024, time.April, 5),
			end:   date(2024, time.April, 10),
			want:  []calendar.BarSegment{{BookingID: 1, Row: 5, StartColumn: 5, ColumnSpan: 2, ClippedEnd: true}},
		},
		{
			name:  "outside grid",
			start: date(2024, time.May, 1),
			end:   date(2024, time.May, 3),
			want:  nil,
		},
		{
			name:  "malformed interval",
			start: march(22),
			end:   march(10),
			want:  nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := calendar.PlaceBooking(rental(1, tc.start, tc.end), marchGrid())
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPlaceBooking_coversWholeGrid(t *testing.T) {
	got := calendar.PlaceBooking(rental(7, date(2024, time.January, 1), date(2024, time.May, 1)), marchGrid())

	require.Len(t, got, calendar.WeeksPerGrid)
	for row, seg := range got {
		assert.Equal(t, row, seg.Row)
		assert.Equal(t, 0, seg.StartColumn)
		assert.Equal(t, calendar.DaysPerWeek, seg.ColumnSpan)
		assert.True(t, seg.ClippedStart)
		assert.True(t, seg.ClippedEnd)
	}
}

func TestPlaceBookings_emptyAndIdempotent(t *testing.T) {
	assert.Empty(t, calendar.PlaceBookings(nil, marchGrid()))

	bookings := []booking.Booking{
		rental(1, march(1), march(5)),
		rental(2, march(3), march(20)),
		rental(3, march(3), march(3)),
	}
	first := calendar.PlaceBookings(bookings, marchGrid())
	second := calendar.PlaceBookings(bookings, marchGrid())
	assert.Equal(t, first, second)
	assert.Equal(t, booking.ID(1), first[0].BookingID)
}

// TestPlaceBookings_spanSumMatchesVisibleDays is the conservation property:
// for random bookings and grids, the spans of a booking's segments add up to
// the number of its days inside the grid, and no segment leaves its row.
func TestPlaceBookings_spanSumMatchesVisibleDays(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := date(2023, time.January, 1)

	for i := 0; i < 2000; i++ {
		start := base.AddDate(0, 0, rng.Intn(900))
		end := start.AddDate(0, 0, rng.Intn(60))
		b := rental(booking.ID(i), start, end)
		grid := calendar.BuildMonthGrid(base.AddDate(0, rng.Intn(30), 0), time.Time{})

		want := 0
		if visible, ok := b.Range.Intersect(grid.Range()); ok {
			want = visible.Days()
		}

		sum := 0
		lastRow := -1
		for _, seg := range calendar.PlaceBooking(b, grid) {
			require.Greater(t, seg.Row, lastRow)
			require.GreaterOrEqual(t, seg.StartColumn, 0)
			require.GreaterOrEqual(t, seg.ColumnSpan, 1)
			require.LessOrEqual(t, seg.StartColumn+seg.ColumnSpan, calendar.DaysPerWeek)
			lastRow = seg.Row
			sum += seg.ColumnSpan
		}
		require.Equal(t, want, sum, "booking %s..%s grid %d-%02d",
			daterange.Format(start), daterange.Format(end), grid.Year, grid.Month)
	}
}
