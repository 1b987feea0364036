package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/shared/daterange"
	"rentcal/internal/infra/storage/memory"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookingSource_ListOrdersAndFilters(t *testing.T) {
	src := memory.NewBookingSource(
		booking.Booking{ID: 3, Range: daterange.Of(day(time.March, 10), day(time.March, 12))},
		booking.Booking{ID: 1, Range: daterange.Of(day(time.March, 1), day(time.March, 2))},
		booking.Booking{ID: 2, Range: daterange.Of(day(time.March, 10), day(time.March, 11))},
		booking.Booking{ID: 4, Range: daterange.Of(day(time.June, 1), day(time.June, 2))},
	)

	got, err := src.List(context.Background(), booking.ListParams{From: day(time.March, 1), To: day(time.March, 31)})

	require.NoError(t, err)
	var ids []booking.ID
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []booking.ID{1, 2, 3}, ids)
	assert.Equal(t, 4, src.Len())
}

func TestBookingSource_Replace(t *testing.T) {
	src := memory.NewBookingSource(booking.Booking{ID: 1, Range: daterange.Of(day(time.March, 1), day(time.March, 2))})

	src.Replace(nil)

	got, err := src.List(context.Background(), booking.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBookingSource_cancelledContext(t *testing.T) {
	src := memory.NewBookingSource(booking.Booking{ID: 1, Range: daterange.Of(day(time.March, 1), day(time.March, 2))})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.List(ctx, booking.ListParams{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBookingSource_malformedStaysInItsMonth(t *testing.T) {
	src := memory.NewBookingSource(
		booking.Booking{ID: 7, Range: daterange.Of(day(time.March, 12), day(time.March, 9))},
	)

	march, err := src.List(context.Background(), booking.ListParams{From: day(time.March, 1), To: day(time.March, 31)})
	require.NoError(t, err)
	assert.Len(t, march, 1)

	june, err := src.List(context.Background(), booking.ListParams{From: day(time.June, 1), To: day(time.June, 30)})
	require.NoError(t, err)
	assert.Empty(t, june)
}
