package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcal/internal/domain/calendar"
)

func TestBuildWindow_labels(t *testing.T) {
	cases := []struct {
		anchor time.Time
		size   int
		label  string
	}{
		{march(17), 1, "March 2024"},
		{march(17), 2, "March 2024 - April 2024"},
		{march(17), 3, "March 2024 - May 2024"},
		{date(2024, time.December, 31), 2, "December 2024 - January 2025"},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			w, err := calendar.BuildWindow(tc.anchor, time.Time{}, tc.size)
			require.NoError(t, err)
			assert.Equal(t, tc.label, w.Label)
			assert.Len(t, w.Grids, tc.size)
			assert.Equal(t, 1, w.Anchor.Day())
		})
	}
}

func TestBuildWindow_consecutiveMonths(t *testing.T) {
	w, err := calendar.BuildWindow(date(2024, time.November, 5), time.Time{}, 3)
	require.NoError(t, err)

	assert.Equal(t, time.November, w.Grids[0].Month)
	assert.Equal(t, time.December, w.Grids[1].Month)
	assert.Equal(t, time.January, w.Grids[2].Month)
	assert.Equal(t, 2025, w.Grids[2].Year)
	assert.Equal(t, w.Grids[0].First(), w.Range().Start)
	assert.Equal(t, w.Grids[2].Last(), w.Range().End)
}

func TestBuildWindow_invalidSize(t *testing.T) {
	for _, size := range []int{-1, 0, 4, 12} {
		_, err := calendar.BuildWindow(march(1), time.Time{}, size)
		require.ErrorIs(t, err, calendar.ErrInvalidWindowSize)
	}
}

// TestNavigate_roundTrip checks that next followed by prev returns to the
// original month for every size, including anchors on the 29th-31st.
func TestNavigate_roundTrip(t *testing.T) {
	anchors := []time.Time{
		date(2024, time.January, 31),
		date(2024, time.February, 29),
		march(10),
		date(2023, time.December, 30),
	}
	for _, anchor := range anchors {
		for size := calendar.MinWindowSize; size <= calendar.MaxWindowSize; size++ {
			next, err := calendar.Navigate(calendar.DirectionNext, anchor, size)
			require.NoError(t, err)
			back, err := calendar.Navigate(calendar.DirectionPrev, next, size)
			require.NoError(t, err)

			assert.Equal(t, anchor.Year(), back.Year())
			assert.Equal(t, anchor.Month(), back.Month())
		}
	}
}

func TestNavigate_neverSkipsOrOverlaps(t *testing.T) {
	for size := calendar.MinWindowSize; size <= calendar.MaxWindowSize; size++ {
		anchor := date(2024, time.January, 31)
		var months []time.Month
		for i := 0; i < 4; i++ {
			w, err := calendar.BuildWindow(anchor, time.Time{}, size)
			require.NoError(t, err)
			for _, g := range w.Grids {
				months = append(months, g.Month)
			}
			anchor, err = calendar.Navigate(calendar.DirectionNext, anchor, size)
			require.NoError(t, err)
		}
		for i, m := range months {
			assert.Equal(t, time.Month(i%12+1), m, "size %d", size)
		}
	}
}

func TestNavigate_errors(t *testing.T) {
	_, err := calendar.Navigate(calendar.DirectionNext, march(1), 4)
	assert.ErrorIs(t, err, calendar.ErrInvalidWindowSize)

	_, err = calendar.Navigate(calendar.Direction("sideways"), march(1), 1)
	assert.ErrorIs(t, err, calendar.ErrInvalidDirection)
}

func TestParseDirection(t *testing.T) {
	d, err := calendar.ParseDirection(" NEXT ")
	require.NoError(t, err)
	assert.Equal(t, calendar.DirectionNext, d)

	_, err = calendar.ParseDirection("up")
	assert.ErrorIs(t, err, calendar.ErrInvalidDirection)
}
