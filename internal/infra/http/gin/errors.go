package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	calendarapp "rentcal/internal/app/handlers/calendar"
)

var (
	errBusUnavailable = errors.New("bus unavailable")
	errInvalidParam   = errors.New("invalid parameter")
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, calendarapp.ErrViewNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidParam), isClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, calendarapp.ErrSourceUnavailable), errors.Is(err, errBusUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isClientError(err error) bool {
	for _, target := range calendarapp.ClientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondWithError writes a JSON error body. Server-side failures are logged
// and their details are not echoed to the client.
func respondWithError(c *gin.Context, logger *slog.Logger, status int, err error) {
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.ErrorContext(c.Request.Context(), "calendar request failed",
				"status", status, "error", err, "path", c.FullPath())
		}
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func handleError(c *gin.Context, logger *slog.Logger, err error) {
	respondWithError(c, logger, statusFor(err), err)
}
