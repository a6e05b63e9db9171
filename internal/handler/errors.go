package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-back-office/internal/booking"
	"github.com/iliyamo/hotel-back-office/internal/repository"
)

// writeError maps the booking/repository error taxonomy onto HTTP
// statuses: validation failures are 400, missing entities 404, business
// and uniqueness conflicts 409, everything else a generic 500.  Store
// failures are never echoed to the client verbatim.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidDateRange),
		errors.Is(err, booking.ErrInvalidRate),
		errors.Is(err, booking.ErrInvalidTransition):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrRoomNotFound),
		errors.Is(err, booking.ErrClientNotFound),
		errors.Is(err, booking.ErrReservationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrRoomUnavailable),
		errors.Is(err, booking.ErrRoomUnderMaintenance):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflicting record"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}
