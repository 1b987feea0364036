package calendar

import (
	"time"

	"rentcal/internal/domain/booking"
)

// ViewState is the caller-owned state of one calendar screen: the window
// position, active filters and the selected booking. Transitions return a new
// value and never touch fields they are not about.
type ViewState struct {
	Anchor     time.Time
	WindowSize int
	Filters    FilterState
	selected   booking.ID
	hasSel     bool
}

func NewViewState(anchor time.Time, size int) (ViewState, error) {
	if err := ValidateWindowSize(size); err != nil {
		return ViewState{}, err
	}
	return ViewState{Anchor: monthStart(anchor), WindowSize: size}, nil
}

// Selected returns the selected booking id, if any.
func (v ViewState) Selected() (booking.ID, bool) {
	return v.selected, v.hasSel
}

// Select marks id as selected. The id need not be visible.
func (v ViewState) Select(id booking.ID) ViewState {
	v.selected, v.hasSel = id, true
	return v
}

func (v ViewState) Deselect() ViewState {
	v.selected, v.hasSel = 0, false
	return v
}

func (v ViewState) WithFilter(key FilterKey, value string) ViewState {
	v.Filters = v.Filters.Set(key, value)
	return v
}

func (v ViewState) WithoutFilter(key FilterKey) ViewState {
	v.Filters = v.Filters.Clear(key)
	return v
}

func (v ViewState) WithoutFilters() ViewState {
	v.Filters = v.Filters.ClearAll()
	return v
}

// Resize changes the window size without moving the anchor.
func (v ViewState) Resize(size int) (ViewState, error) {
	if err := ValidateWindowSize(size); err != nil {
		return v, err
	}
	v.WindowSize = size
	return v, nil
}

// Navigate steps the anchor by the current window size.
func (v ViewState) Navigate(dir Direction) (ViewState, error) {
	anchor, err := Navigate(dir, v.Anchor, v.WindowSize)
	if err != nil {
		return v, err
	}
	v.Anchor = anchor
	return v, nil
}

func (v ViewState) Window(today time.Time) (Window, error) {
	return BuildWindow(v.Anchor, today, v.WindowSize)
}

// SelectedIn looks the selection up in the visible set. An absent id simply
// yields false.
func (v ViewState) SelectedIn(visible []booking.Booking) (booking.Booking, bool) {
	if !v.hasSel {
		return booking.Booking{}, false
	}
	for _, b := range visible {
		if b.ID == v.selected {
			return b, true
		}
	}
	return booking.Booking{}, false
}

// Reconcile drops the selection when it is no longer in visible. Callers
// invoke it explicitly; filter changes never do.
func (v ViewState) Reconcile(visible []booking.Booking) ViewState {
	if _, ok := v.SelectedIn(visible); !ok {
		return v.Deselect()
	}
	return v
}
