package memory

import (
	"context"
	"sort"
	"sync"

	"rentcal/internal/domain/booking"
)

// BookingSource serves bookings from memory. Replace swaps the whole set,
// which is how fresh data from upstream reaches the calendar.
type BookingSource struct {
	mu    sync.RWMutex
	items []booking.Booking
}

func NewBookingSource(items ...booking.Booking) *BookingSource {
	s := &BookingSource{}
	s.Replace(items)
	return s
}

// Replace installs a new booking set, ordered by start date then id.
func (s *BookingSource) Replace(items []booking.Booking) {
	next := append([]booking.Booking(nil), items...)
	sort.SliceStable(next, func(i, j int) bool {
		if next[i].Range.Start.Equal(next[j].Range.Start) {
			return next[i].ID < next[j].ID
		}
		return next[i].Range.Start.Before(next[j].Range.Start)
	})
	s.mu.Lock()
	s.items = next
	s.mu.Unlock()
}

func (s *BookingSource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// List returns copies of the bookings intersecting params.
func (s *BookingSource) List(ctx context.Context, params booking.ListParams) ([]booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]booking.Booking, 0, len(s.items))
	for _, b := range s.items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if params.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

var _ booking.Source = (*BookingSource)(nil)
