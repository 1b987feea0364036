package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/calendar"
)

func TestViewState_selection(t *testing.T) {
	v, err := calendar.NewViewState(march(20), 1)
	require.NoError(t, err)
	assert.Equal(t, march(1), v.Anchor)

	_, ok := v.Selected()
	assert.False(t, ok)

	v = v.Select(999)
	id, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, booking.ID(999), id)

	_, visible := v.SelectedIn(fleet())
	assert.False(t, visible)

	v = v.Select(102)
	got, visible := v.SelectedIn(fleet())
	require.True(t, visible)
	assert.Equal(t, "Kia Rio", got.Car.Model)

	v = v.Deselect()
	_, ok = v.Selected()
	assert.False(t, ok)
}

func TestViewState_filtersLeaveSelectionAlone(t *testing.T) {
	v, err := calendar.NewViewState(march(1), 2)
	require.NoError(t, err)
	v = v.Select(102).WithFilter(calendar.FilterStatus, "CANCELLED")

	id, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, booking.ID(102), id)

	visible := calendar.ApplyFilters(v.Filters, fleet())
	reconciled := v.Reconcile(visible)
	_, ok = reconciled.Selected()
	assert.False(t, ok)

	v = v.WithoutFilter(calendar.FilterStatus)
	assert.True(t, v.Filters.IsEmpty())
	assert.True(t, v.Reconcile(calendar.ApplyFilters(v.Filters, fleet())).Filters.IsEmpty())

	v = v.WithFilter(calendar.FilterCar, "car-1").WithFilter(calendar.FilterText, "x").WithoutFilters()
	assert.True(t, v.Filters.IsEmpty())
}

func TestViewState_resizeThenNavigate(t *testing.T) {
	v, err := calendar.NewViewState(march(1), 1)
	require.NoError(t, err)

	v, err = v.Resize(3)
	require.NoError(t, err)
	assert.Equal(t, march(1), v.Anchor)

	v, err = v.Navigate(calendar.DirectionNext)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.June, 1), v.Anchor)

	w, err := v.Window(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "June 2024 - August 2024", w.Label)

	_, err = v.Resize(0)
	assert.ErrorIs(t, err, calendar.ErrInvalidWindowSize)
	_, err = calendar.NewViewState(march(1), 5)
	assert.ErrorIs(t, err, calendar.ErrInvalidWindowSize)
}
