package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rentcal/internal/app/dto"
	"rentcal/internal/app/queries"
	"rentcal/internal/domain/booking"
	domaincalendar "rentcal/internal/domain/calendar"
	"rentcal/internal/domain/shared/daterange"
)

const (
	getLayoutKey = "calendar.layout"
	getDayKey    = "calendar.day"
)

// ErrSourceUnavailable wraps failures of the booking data source.
var ErrSourceUnavailable = errors.New("calendar: booking source unavailable")

// Clock supplies "today". The host passes time.Now in production.
type Clock func() time.Time

type GetLayoutQuery struct {
	View domaincalendar.ViewState
}

func (q GetLayoutQuery) Key() string { return getLayoutKey }

type GetDayQuery struct {
	Day     time.Time
	Filters domaincalendar.FilterState
	// VisibleCap overrides the handler default when non-nil.
	VisibleCap *int
}

func (q GetDayQuery) Key() string { return getDayKey }

type LayoutHandler struct {
	Source     booking.Source
	Clock      Clock
	VisibleCap int
	Logger     *slog.Logger
}

func (h *LayoutHandler) Handle(ctx context.Context, q GetLayoutQuery) (dto.CalendarLayout, error) {
	window, err := q.View.Window(h.today())
	if err != nil {
		return dto.CalendarLayout{}, err
	}
	visible, err := loadFiltered(ctx, h.Source, window.Range(), q.View.Filters)
	if err != nil {
		return dto.CalendarLayout{}, err
	}

	prev, err := domaincalendar.Navigate(domaincalendar.DirectionPrev, window.Anchor, window.Size)
	if err != nil {
		return dto.CalendarLayout{}, err
	}
	next, err := domaincalendar.Navigate(domaincalendar.DirectionNext, window.Anchor, window.Size)
	if err != nil {
		return dto.CalendarLayout{}, err
	}

	layout := domaincalendar.BuildLayout(visible, window, h.VisibleCap)
	if h.Logger != nil {
		h.Logger.DebugContext(ctx, "calendar layout built",
			"window", window.Label, "bookings", len(visible), "filters", q.View.Filters.String())
	}
	return dto.MapLayout(dto.LayoutInput{
		Layout:  layout,
		Summary: domaincalendar.Summarize(visible, window),
		Visible: visible,
		View:    q.View,
		Prev:    prev,
		Next:    next,
	}), nil
}

func (h *LayoutHandler) today() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock()
}

type DayHandler struct {
	Source     booking.Source
	VisibleCap int
}

func (h *DayHandler) Handle(ctx context.Context, q GetDayQuery) (dto.DayDetails, error) {
	if q.Day.IsZero() {
		return dto.DayDetails{}, daterange.ErrInvalidDate
	}
	day := daterange.Day(q.Day)
	visible, err := loadFiltered(ctx, h.Source, daterange.Of(day, day), q.Filters)
	if err != nil {
		return dto.DayDetails{}, err
	}
	visibleCap := h.VisibleCap
	if q.VisibleCap != nil {
		visibleCap = *q.VisibleCap
	}

	covering := make([]booking.Booking, 0, len(visible))
	for _, b := range visible {
		if b.Covers(day) {
			covering = append(covering, b)
		}
	}
	return dto.MapDayDetails(domaincalendar.ComputeOverflow(day, visible, visibleCap), covering), nil
}

func loadFiltered(ctx context.Context, source booking.Source, r daterange.DateRange, filters domaincalendar.FilterState) ([]booking.Booking, error) {
	if source == nil {
		return nil, ErrSourceUnavailable
	}
	all, err := source.List(ctx, booking.ListParams{From: r.Start, To: r.End})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return domaincalendar.ApplyFilters(filters, all), nil
}

var (
	_ queries.Handler[GetLayoutQuery, dto.CalendarLayout] = (*LayoutHandler)(nil)
	_ queries.Handler[GetDayQuery, dto.DayDetails]        = (*DayHandler)(nil)
)
