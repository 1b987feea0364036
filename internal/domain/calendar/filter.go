package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rentcal/internal/domain/booking"
)

var (
	ErrUnknownFilter   = errors.New("calendar: unknown filter key")
	ErrDuplicateFilter = errors.New("calendar: filter key given more than once")
)

type FilterKey string

const (
	FilterStatus FilterKey = "status"
	FilterCar    FilterKey = "car"
	FilterOwner  FilterKey = "owner"
	FilterPlate  FilterKey = "plate"
	FilterText   FilterKey = "q"
)

// FilterKeys lists the supported predicates.
var FilterKeys = []FilterKey{FilterStatus, FilterCar, FilterOwner, FilterPlate, FilterText}

func ParseFilterKey(raw string) (FilterKey, error) {
	k := FilterKey(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range FilterKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, raw)
}

// FilterState is an immutable set of active predicates. Every transition
// returns a new value; the zero value matches everything.
type FilterState struct {
	predicates map[FilterKey]string
}

// NewFilterState builds a state from raw key/value pairs. Empty values are
// ignored. Two raw keys naming the same filter are rejected.
func NewFilterState(values map[string]string) (FilterState, error) {
	f := FilterState{}
	seen := make(map[FilterKey]string, len(values))
	for raw, value := range values {
		key, err := ParseFilterKey(raw)
		if err != nil {
			return FilterState{}, err
		}
		if prev, dup := seen[key]; dup {
			return FilterState{}, fmt.Errorf("%w: %q and %q both set %s", ErrDuplicateFilter, prev, raw, key)
		}
		seen[key] = raw
		f = f.Set(key, value)
	}
	return f, nil
}

// Set sets or replaces a predicate. An empty value clears it.
func (f FilterState) Set(key FilterKey, value string) FilterState {
	value = strings.TrimSpace(value)
	if value == "" {
		return f.Clear(key)
	}
	next := f.copy()
	next.predicates[key] = value
	return next
}

func (f FilterState) Clear(key FilterKey) FilterState {
	if _, ok := f.predicates[key]; !ok {
		return f
	}
	next := f.copy()
	delete(next.predicates, key)
	return next
}

func (f FilterState) ClearAll() FilterState {
	return FilterState{}
}

func (f FilterState) Get(key FilterKey) (string, bool) {
	v, ok := f.predicates[key]
	return v, ok
}

func (f FilterState) IsEmpty() bool {
	return len(f.predicates) == 0
}

// Values returns a copy of the active predicates keyed by name.
func (f FilterState) Values() map[string]string {
	out := make(map[string]string, len(f.predicates))
	for k, v := range f.predicates {
		out[string(k)] = v
	}
	return out
}

// String renders predicates in key order, e.g. "plate=AB;status=PENDING".
func (f FilterState) String() string {
	parts := make([]string, 0, len(f.predicates))
	for k, v := range f.predicates {
		parts = append(parts, string(k)+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// Match reports whether b satisfies every active predicate.
func (f FilterState) Match(b booking.Booking) bool {
	for key, value := range f.predicates {
		if !matchPredicate(key, value, b) {
			return false
		}
	}
	return true
}

func (f FilterState) copy() FilterState {
	next := FilterState{predicates: make(map[FilterKey]string, len(f.predicates)+1)}
	for k, v := range f.predicates {
		next.predicates[k] = v
	}
	return next
}

// ApplyFilters returns the bookings matching f, preserving input order.
func ApplyFilters(f FilterState, bookings []booking.Booking) []booking.Booking {
	out := make([]booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

func matchPredicate(key FilterKey, value string, b booking.Booking) bool {
	switch key {
	case FilterStatus:
		for _, s := range strings.Split(value, ",") {
			if strings.EqualFold(strings.TrimSpace(s), string(b.Status)) {
				return true
			}
		}
		return false
	case FilterCar:
		return b.Car.ID == value
	case FilterOwner:
		return b.Owner.ID == value
	case FilterPlate:
		return containsFold(normalizePlate(b.Car.Plate), normalizePlate(value))
	case FilterText:
		return matchText(value, b)
	default:
		return false
	}
}

func matchText(value string, b booking.Booking) bool {
	fields := []string{
		strconv.FormatInt(int64(b.ID), 10),
		string(b.Status),
		b.Car.Plate,
		b.Car.Model,
		b.Renter.Name,
		b.Owner.Name,
	}
	for _, field := range fields {
		if containsFold(field, value) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func normalizePlate(p string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(p)
}
