package memory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/shared/daterange"
	"rentcal/internal/infra/storage/memory"
)

const fixturesJSON = `[
  {"id": 1, "start_date": "2024-03-10", "end_date": "2024-03-22", "status": "CONFIRMED",
   "amount": "1299.50", "currency": "usd",
   "car": {"id": "car-1", "plate": "AB 123 C", "model": "Toyota Corolla"},
   "renter": {"id": "r-1", "name": "Sam Rider"}, "owner": {"id": "o-1", "name": "Dana Host"}},
  {"id": 2, "start_date": "2024-03-22", "end_date": "2024-03-10", "status": "PENDING"},
  {"id": 3, "start_date": "2024-03-01", "end_date": "2024-03-01", "status": "ARCHIVED"},
  {"id": 4, "start_date": "2024-13-01", "end_date": "2024-03-01", "status": "PENDING"},
  {"id": 5, "start_date": "2024-03-05", "end_date": "2024-03-05", "status": "pending"}
]`

func TestDecodeBookingFixtures(t *testing.T) {
	bookings, rejected, err := memory.DecodeBookingFixtures([]byte(fixturesJSON))

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Len(t, rejected, 3)

	first := bookings[0]
	assert.Equal(t, booking.ID(1), first.ID)
	assert.Equal(t, 13, first.Range.Days())
	assert.Equal(t, "1299.50", first.Amount.Decimal())
	assert.Equal(t, "USD", first.Amount.Currency)
	assert.Equal(t, "Toyota Corolla", first.Car.Model)
	assert.Equal(t, booking.StatusPending, bookings[1].Status)

	assert.ErrorIs(t, rejected[0], daterange.ErrInvalidRange)
	assert.ErrorIs(t, rejected[1], booking.ErrInvalidStatus)
	assert.ErrorIs(t, rejected[2], daterange.ErrInvalidDate)
}

func TestLoadBookingFixtures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.json")
	require.NoError(t, os.WriteFile(path, []byte(fixturesJSON), 0o600))

	bookings, _, err := memory.LoadBookingFixtures(path)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	_, _, err = memory.LoadBookingFixtures(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = memory.DecodeBookingFixtures([]byte("{"))
	assert.Error(t, err)
}
