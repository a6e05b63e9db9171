package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-back-office/internal/booking"
	"github.com/iliyamo/hotel-back-office/internal/queue"
	"github.com/iliyamo/hotel-back-office/internal/repository"
	queue_publisher "github.com/iliyamo/hotel-back-office/internal/service"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.  All
// business decisions live in booking.Manager; the handler only binds,
// parses dates and maps errors.
type ReservationHandler struct {
	Manager      *booking.Manager
	Reservations *repository.ReservationRepo
	PublishEvent bool // gate the RabbitMQ publish on broker configuration
}

func NewReservationHandler(m *booking.Manager, r *repository.ReservationRepo, publish bool) *ReservationHandler {
	return &ReservationHandler{Manager: m, Reservations: r, PublishEvent: publish}
}

type createReservationReq struct {
	ClientID uint64 `json:"client_id"`
	RoomID   uint64 `json:"room_id"`
	CheckIn  string `json:"check_in"`  // YYYY-MM-DD
	CheckOut string `json:"check_out"` // YYYY-MM-DD
}

type updateReservationReq struct {
	ClientID *uint64 `json:"client_id"`
	RoomID   *uint64 `json:"room_id"`
	CheckIn  *string `json:"check_in"`
	CheckOut *string `json:"check_out"`
	Status   *string `json:"status"`
}

// Create books a stay and answers 201 with the joined detail view.  On
// success a reservation.confirmed event is published asynchronously;
// publish failures never affect the response.
func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ClientID == 0 || req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "client_id and room_id required"})
	}
	checkIn, err := booking.ParseDate(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := booking.ParseDate(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Manager.Create(ctx, booking.CreateInput{
		ClientID: req.ClientID,
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		return writeError(c, err)
	}

	detail, err := h.Reservations.GetDetail(ctx, res.ID)
	if err != nil {
		return writeError(c, err)
	}

	if h.PublishEvent {
		go publishConfirmed(*detail)
	}
	return c.JSON(http.StatusCreated, detail)
}

// List returns every reservation with client and room summaries.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Reservations.List(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// GetOne returns a single reservation with its summaries.
func (h *ReservationHandler) GetOne(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Reservations.GetDetail(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Update applies a partial edit (dates, room, client, status).  Omitted
// fields keep their stored values; illegal status transitions answer
// 400 and overlapping date moves 409.
func (h *ReservationHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	in := booking.UpdateInput{ClientID: req.ClientID, RoomID: req.RoomID}
	if req.CheckIn != nil {
		d, err := booking.ParseDate(*req.CheckIn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
		}
		in.CheckIn = &d
	}
	if req.CheckOut != nil {
		d, err := booking.ParseDate(*req.CheckOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
		}
		in.CheckOut = &d
	}
	if req.Status != nil {
		s := strings.ToUpper(strings.TrimSpace(*req.Status))
		in.Status = &s
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Manager.Update(ctx, id, in); err != nil {
		return writeError(c, err)
	}
	detail, err := h.Reservations.GetDetail(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Delete removes a reservation outright and answers 204.  Cancelling is
// an Update to CANCELLED; delete is for bookings entered in error.
func (h *ReservationHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Manager.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// publishConfirmed builds the broker event from the detail view and
// fires it with its own timeout, detached from the request.
func publishConfirmed(d repository.ReservationDetail) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	in, _ := booking.ParseDate(d.CheckIn)
	out, _ := booking.ParseDate(d.CheckOut)
	_ = queue_publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		ReservationID: d.ID,
		ClientID:      d.Client.ID,
		ClientName:    d.Client.Name,
		RoomID:        d.Room.ID,
		RoomNumber:    d.Room.Number,
		CheckIn:       d.CheckIn,
		CheckOut:      d.CheckOut,
		Nights:        booking.Nights(in, out),
		TotalPrice:    d.TotalPrice,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	})
}
