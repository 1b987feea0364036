package ginserver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"rentcal/internal/app/commands"
	"rentcal/internal/app/dto"
	calendarapp "rentcal/internal/app/handlers/calendar"
	"rentcal/internal/app/queries"
	"rentcal/internal/domain/booking"
	"rentcal/internal/domain/calendar"
	"rentcal/internal/domain/shared/daterange"
)

type ViewHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type createViewRequest struct {
	Anchor string `json:"anchor"`
	Window int    `json:"window"`
}

type filterRequest struct {
	Value string `json:"value"`
}

type selectionRequest struct {
	BookingID *int64 `json:"booking_id" binding:"required"`
}

type windowRequest struct {
	Size int `json:"size" binding:"required"`
}

type navigateRequest struct {
	Direction string `json:"direction" binding:"required"`
}

func (h ViewHandler) Create(c *gin.Context) {
	var req createViewRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(c, err)
		return
	}
	cmd := calendarapp.CreateViewCommand{WindowSize: req.Window}
	if req.Anchor != "" {
		anchor, err := daterange.Parse(req.Anchor)
		if err != nil {
			handleError(c, h.Logger, err)
			return
		}
		cmd.Anchor = anchor
	}
	result, ok := dispatch[calendarapp.CreateViewCommand](c, h, cmd)
	if !ok {
		return
	}
	c.Header("Location", fmt.Sprintf("/api/v1/views/%s", result.ID))
	c.JSON(http.StatusCreated, result)
}

func (h ViewHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		respondWithError(c, h.Logger, http.StatusServiceUnavailable, errBusUnavailable)
		return
	}
	result, err := queries.Ask[calendarapp.GetViewQuery, dto.View](c.Request.Context(), h.Queries, calendarapp.GetViewQuery{ViewID: c.Param("id")})
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ViewHandler) Layout(c *gin.Context) {
	if h.Queries == nil {
		respondWithError(c, h.Logger, http.StatusServiceUnavailable, errBusUnavailable)
		return
	}
	query := calendarapp.GetViewLayoutQuery{ViewID: c.Param("id")}
	result, err := queries.Ask[calendarapp.GetViewLayoutQuery, dto.CalendarLayout](c.Request.Context(), h.Queries, query)
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ViewHandler) SetFilter(c *gin.Context) {
	key, err := calendar.ParseFilterKey(c.Param("key"))
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	h.respond(c, calendarapp.SetFilterCommand{ViewID: c.Param("id"), Filter: key, Value: req.Value})
}

func (h ViewHandler) ClearFilter(c *gin.Context) {
	key, err := calendar.ParseFilterKey(c.Param("key"))
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	h.respond(c, calendarapp.ClearFilterCommand{ViewID: c.Param("id"), Filter: key})
}

func (h ViewHandler) ClearFilters(c *gin.Context) {
	h.respond(c, calendarapp.ClearFiltersCommand{ViewID: c.Param("id")})
}

func (h ViewHandler) Select(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	h.respond(c, calendarapp.SelectBookingCommand{ViewID: c.Param("id"), BookingID: booking.ID(*req.BookingID)})
}

func (h ViewHandler) Deselect(c *gin.Context) {
	h.respond(c, calendarapp.DeselectBookingCommand{ViewID: c.Param("id")})
}

func (h ViewHandler) Resize(c *gin.Context) {
	var req windowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	h.respond(c, calendarapp.ResizeWindowCommand{ViewID: c.Param("id"), Size: req.Size})
}

func (h ViewHandler) Navigate(c *gin.Context) {
	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	dir, err := calendar.ParseDirection(req.Direction)
	if err != nil {
		handleError(c, h.Logger, err)
		return
	}
	h.respond(c, calendarapp.NavigateCommand{ViewID: c.Param("id"), Direction: dir})
}

func (h ViewHandler) Close(c *gin.Context) {
	if _, ok := dispatch[calendarapp.CloseViewCommand](c, h, calendarapp.CloseViewCommand{ViewID: c.Param("id")}); ok {
		c.Status(http.StatusNoContent)
	}
}

func (h ViewHandler) respond(c *gin.Context, cmd commands.Command) {
	result, ok := dispatch[commands.Command](c, h, cmd)
	if ok {
		c.JSON(http.StatusOK, result)
	}
}

func (h ViewHandler) badRequest(c *gin.Context, err error) {
	respondWithError(c, h.Logger, http.StatusBadRequest, err)
}

func dispatch[C commands.Command](c *gin.Context, h ViewHandler, cmd C) (dto.View, bool) {
	if h.Commands == nil {
		respondWithError(c, h.Logger, http.StatusServiceUnavailable, errBusUnavailable)
		return dto.View{}, false
	}
	ctx := c.Request.Context()
	result, err := commands.Dispatch[C, dto.View](ctx, h.Commands, cmd)
	if err != nil {
		handleError(c, h.Logger, err)
		return dto.View{}, false
	}
	return result, true
}

var _ ViewHTTP = ViewHandler{}
