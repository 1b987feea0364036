package ginserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"rentcal/internal/app/dto"
	calendarapp "rentcal/internal/app/handlers/calendar"
	"rentcal/internal/app/queries"
	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/calendar"
	"rentcal/internal/domain/shared/daterange"
)

type CalendarHandler struct {
	Queries       queries.Bus
	Clock         calendarapp.Clock
	DefaultWindow int
	Logger        *slog.Logger
}

// Layout renders a stateless calendar from query parameters.
func (h CalendarHandler) Layout(c *gin.Context) {
	if h.Queries == nil {
		respondWithError(c, h.Logger, http.StatusServiceUnavailable, errBusUnavailable)
		return
	}
	view, err := h.viewFromQuery(c)
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	result, err := queries.Ask[calendarapp.GetLayoutQuery, dto.CalendarLayout](c.Request.Context(), h.Queries, calendarapp.GetLayoutQuery{View: view})
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Day lists every booking covering one date, with the overflow summary.
func (h CalendarHandler) Day(c *gin.Context) {
	if h.Queries == nil {
		respondWithError(c, h.Logger, http.StatusServiceUnavailable, errBusUnavailable)
		return
	}
	day, err := daterange.Parse(c.Param("date"))
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	filters, err := filtersFromQuery(c)
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	query := calendarapp.GetDayQuery{Day: day, Filters: filters}
	if raw := strings.TrimSpace(c.Query("cap")); raw != "" {
		visibleCap, err := strconv.Atoi(raw)
		if err != nil {
			handleError(c, h.Logger, fmt.Errorf("%w: cap must be an integer", errInvalidParam))
			return
		}
		query.VisibleCap = &visibleCap
	}
	result, err := queries.Ask[calendarapp.GetDayQuery, dto.DayDetails](c.Request.Context(), h.Queries, query)
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) viewFromQuery(c *gin.Context) (calendar.ViewState, error) {
	anchor, err := parseAnchor(c.Query("anchor"), h.Clock)
	if err != nil {
		return calendar.ViewState{}, err
	}
	size, err := parseWindow(c.Query("window"), h.DefaultWindow)
	if err != nil {
		return calendar.ViewState{}, err
	}
	view, err := calendar.NewViewState(anchor, size)
	if err != nil {
		return calendar.ViewState{}, err
	}
	if view.Filters, err = filtersFromQuery(c); err != nil {
		return calendar.ViewState{}, err
	}
	if raw := strings.TrimSpace(c.Query("selected")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return calendar.ViewState{}, fmt.Errorf("%w: selected must be a booking id", errInvalidParam)
		}
		view = view.Select(booking.ID(id))
	}
	return view, nil
}

func filtersFromQuery(c *gin.Context) (calendar.FilterState, error) {
	values := make(map[string]string, len(calendar.FilterKeys))
	for _, key := range calendar.FilterKeys {
		if v, ok := c.GetQuery(string(key)); ok {
			values[string(key)] = v
		}
	}
	return calendar.NewFilterState(values)
}

func parseAnchor(raw string, clock calendarapp.Clock) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		if clock == nil {
			return time.Now(), nil
		}
		return clock(), nil
	}
	return daterange.Parse(raw)
}

func parseWindow(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", calendar.ErrInvalidWindowSize, raw)
	}
	return size, calendar.ValidateWindowSize(size)
}

var _ CalendarHTTP = CalendarHandler{}
