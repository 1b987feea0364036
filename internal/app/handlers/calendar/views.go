package calendar

import (
	"context"
	"errors"
	"time"

	"rentcal/internal/app/commands"
	"rentcal/internal/app/dto"
	"rentcal/internal/app/queries"
	"rentcal/internal/domain/booking"
	domaincalendar "rentcal/internal/domain/calendar"
	"rentcal/internal/domain/shared/daterange"
)

const (
	createViewKey    = "calendar.view.create"
	setFilterKey     = "calendar.view.filter.set"
	clearFilterKey   = "calendar.view.filter.clear"
	clearFiltersKey  = "calendar.view.filters.clear"
	selectBookingKey = "calendar.view.select"
	deselectKey      = "calendar.view.deselect"
	resizeWindowKey  = "calendar.view.resize"
	navigateKey      = "calendar.view.navigate"
	closeViewKey     = "calendar.view.close"
	getViewKey       = "calendar.view.get"
	getViewLayoutKey = "calendar.view.layout"
)

var ErrViewNotFound = errors.New("calendar: view not found")

// ClientErrors are the failures caused by caller input rather than by the
// service; the transport answers them with 4xx.
var ClientErrors = []error{
	ErrViewNotFound,
	domaincalendar.ErrInvalidWindowSize,
	domaincalendar.ErrInvalidDirection,
	domaincalendar.ErrUnknownFilter,
	domaincalendar.ErrDuplicateFilter,
	daterange.ErrInvalidDate,
	daterange.ErrInvalidRange,
}

// ViewRepository keeps screen states for their lifetime. Update applies fn
// atomically for one view.
type ViewRepository interface {
	Create(ctx context.Context, state domaincalendar.ViewState) (string, error)
	Get(ctx context.Context, id string) (domaincalendar.ViewState, error)
	Update(ctx context.Context, id string, fn func(domaincalendar.ViewState) (domaincalendar.ViewState, error)) (domaincalendar.ViewState, error)
	Delete(ctx context.Context, id string) error
}

type CreateViewCommand struct {
	Anchor     time.Time
	WindowSize int
}

func (CreateViewCommand) Key() string { return createViewKey }

type SetFilterCommand struct {
	ViewID string
	Filter domaincalendar.FilterKey
	Value  string
}

func (SetFilterCommand) Key() string { return setFilterKey }

type ClearFilterCommand struct {
	ViewID string
	Filter domaincalendar.FilterKey
}

func (ClearFilterCommand) Key() string { return clearFilterKey }

type ClearFiltersCommand struct {
	ViewID string
}

func (ClearFiltersCommand) Key() string { return clearFiltersKey }

type SelectBookingCommand struct {
	ViewID    string
	BookingID booking.ID
}

func (SelectBookingCommand) Key() string { return selectBookingKey }

type DeselectBookingCommand struct {
	ViewID string
}

func (DeselectBookingCommand) Key() string { return deselectKey }

type ResizeWindowCommand struct {
	ViewID string
	Size   int
}

func (ResizeWindowCommand) Key() string { return resizeWindowKey }

type NavigateCommand struct {
	ViewID    string
	Direction domaincalendar.Direction
}

func (NavigateCommand) Key() string { return navigateKey }

type CloseViewCommand struct {
	ViewID string
}

func (CloseViewCommand) Key() string { return closeViewKey }

type GetViewQuery struct {
	ViewID string
}

func (GetViewQuery) Key() string { return getViewKey }

type GetViewLayoutQuery struct {
	ViewID string
}

func (GetViewLayoutQuery) Key() string { return getViewLayoutKey }

// ViewHandlers implements every view-state command on top of a ViewRepository.
type ViewHandlers struct {
	Views         ViewRepository
	Clock         Clock
	DefaultWindow int
}

func (h *ViewHandlers) Create(ctx context.Context, cmd CreateViewCommand) (dto.View, error) {
	anchor := cmd.Anchor
	if anchor.IsZero() {
		anchor = h.today()
	}
	size := cmd.WindowSize
	if size == 0 {
		size = h.DefaultWindow
	}
	state, err := domaincalendar.NewViewState(anchor, size)
	if err != nil {
		return dto.View{}, err
	}
	id, err := h.Views.Create(ctx, state)
	if err != nil {
		return dto.View{}, err
	}
	return dto.MapView(id, state), nil
}

func (h *ViewHandlers) SetFilter(ctx context.Context, cmd SetFilterCommand) (dto.View, error) {
	return h.mutate(ctx, cmd.ViewID, func(v domaincalendar.ViewState) (domaincalendar.ViewState, error) {
		return v.WithFilter(cmd.Filter, cmd.Value), nil
	})
}

func (h *ViewHandlers) ClearFilter(ctx context.Context, cmd ClearFilterCommand) (dto.View, error) {
	return h.mutate(ctx, cmd.ViewID, func(v domaincalendar.ViewState) (domaincalendar.ViewState, error) {
		return v.WithoutFilter(cmd.Filter), nil
	})
}

func (h *ViewHandlers) ClearFilters(ctx context.Context, cmd ClearFiltersCommand) (dto.View, error) {
	return h.mutate(ctx, cmd.ViewID, func(v domaincalendar.ViewState) (domaincalendar.ViewState, error) {
		return v.WithoutFilters(), nil
	})
}

func (h *ViewHandlers) Select(ctx context.Context, cmd SelectBookingCommand) (dto.View, error) {
	return h.mutate(ctx, cmd.ViewID, func(v domaincalendar.ViewState) (domaincalendar.ViewState, error) {
		return v.Select(cmd.BookingID), nil
	})
}

func (h *ViewHandlers) Deselect(ctx context.Context, cmd DeselectBookingCommand) (dto.View, error) {
	return h.mutate(ctx, cmd.ViewID, func(v domaincalendar.ViewState) (domaincalendar.ViewState, error) {
		return v.Deselect(), nil
	})
}

func (h *ViewHandlers) Resize(ctx context.Context, cmd ResizeWindowCommand) (dto.View, error) {
	return h.mutate(ctx, cmd.ViewID, func(v domaincalendar.ViewState) (domaincalendar.ViewState, error) {
		return v.Resize(cmd.Size)
	})
}

func (h *ViewHandlers) Navigate(ctx context.Context, cmd NavigateCommand) (dto.View, error) {
	return h.mutate(ctx, cmd.ViewID, func(v domaincalendar.ViewState) (domaincalendar.ViewState, error) {
		return v.Navigate(cmd.Direction)
	})
}

func (h *ViewHandlers) Close(ctx context.Context, cmd CloseViewCommand) (dto.View, error) {
	state, err := h.Views.Get(ctx, cmd.ViewID)
	if err != nil {
		return dto.View{}, err
	}
	if err := h.Views.Delete(ctx, cmd.ViewID); err != nil {
		return dto.View{}, err
	}
	return dto.MapView(cmd.ViewID, state), nil
}

func (h *ViewHandlers) Get(ctx context.Context, q GetViewQuery) (dto.View, error) {
	state, err := h.Views.Get(ctx, q.ViewID)
	if err != nil {
		return dto.View{}, err
	}
	return dto.MapView(q.ViewID, state), nil
}

func (h *ViewHandlers) mutate(ctx context.Context, id string, fn func(domaincalendar.ViewState) (domaincalendar.ViewState, error)) (dto.View, error) {
	state, err := h.Views.Update(ctx, id, fn)
	if err != nil {
		return dto.View{}, err
	}
	return dto.MapView(id, state), nil
}

func (h *ViewHandlers) today() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock()
}

// ViewLayoutHandler renders the layout for a stored view.
type ViewLayoutHandler struct {
	Views  ViewRepository
	Layout *LayoutHandler
}

func (h *ViewLayoutHandler) Handle(ctx context.Context, q GetViewLayoutQuery) (dto.CalendarLayout, error) {
	state, err := h.Views.Get(ctx, q.ViewID)
	if err != nil {
		return dto.CalendarLayout{}, err
	}
	return h.Layout.Handle(ctx, GetLayoutQuery{View: state})
}

// RegisterViewCommands wires every view command onto bus.
func RegisterViewCommands(bus *commands.InMemoryBus, h *ViewHandlers) {
	commands.RegisterHandler[CreateViewCommand, dto.View](bus, commands.HandlerFunc[CreateViewCommand, dto.View](h.Create))
	commands.RegisterHandler[SetFilterCommand, dto.View](bus, commands.HandlerFunc[SetFilterCommand, dto.View](h.SetFilter))
	commands.RegisterHandler[ClearFilterCommand, dto.View](bus, commands.HandlerFunc[ClearFilterCommand, dto.View](h.ClearFilter))
	commands.RegisterHandler[ClearFiltersCommand, dto.View](bus, commands.HandlerFunc[ClearFiltersCommand, dto.View](h.ClearFilters))
	commands.RegisterHandler[SelectBookingCommand, dto.View](bus, commands.HandlerFunc[SelectBookingCommand, dto.View](h.Select))
	commands.RegisterHandler[DeselectBookingCommand, dto.View](bus, commands.HandlerFunc[DeselectBookingCommand, dto.View](h.Deselect))
	commands.RegisterHandler[ResizeWindowCommand, dto.View](bus, commands.HandlerFunc[ResizeWindowCommand, dto.View](h.Resize))
	commands.RegisterHandler[NavigateCommand, dto.View](bus, commands.HandlerFunc[NavigateCommand, dto.View](h.Navigate))
	commands.RegisterHandler[CloseViewCommand, dto.View](bus, commands.HandlerFunc[CloseViewCommand, dto.View](h.Close))
}

// RegisterQueries wires the calendar read side onto bus.
func RegisterQueries(bus *queries.InMemoryBus, layout *LayoutHandler, day *DayHandler, views *ViewHandlers) {
	queries.RegisterHandler[GetLayoutQuery, dto.CalendarLayout](bus, layout)
	queries.RegisterHandler[GetDayQuery, dto.DayDetails](bus, day)
	queries.RegisterHandler[GetViewQuery, dto.View](bus, queries.HandlerFunc[GetViewQuery, dto.View](views.Get))
	queries.RegisterHandler[GetViewLayoutQuery, dto.CalendarLayout](bus, &ViewLayoutHandler{Views: views.Views, Layout: layout})
}
