package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-back-office/internal/booking"
	"github.com/iliyamo/hotel-back-office/internal/model"
	"github.com/iliyamo/hotel-back-office/internal/repository"
)

// RoomHandler exposes room CRUD plus the status sync endpoint.  Read
// endpoints report the effective status computed from today's
// reservations rather than the cached column, so a stale cache never
// reaches staff screens.
type RoomHandler struct {
	Rooms      *repository.RoomRepo
	Reconciler *booking.Reconciler
	Clock      booking.Clock
}

func NewRoomHandler(r *repository.RoomRepo, rec *booking.Reconciler, clock booking.Clock) *RoomHandler {
	return &RoomHandler{Rooms: r, Reconciler: rec, Clock: clock}
}

type roomReq struct {
	Number      string   `json:"number"`
	Type        string   `json:"type"`
	NightlyRate *float64 `json:"nightly_rate"`
	Capacity    *uint32  `json:"capacity"`
	Status      string   `json:"status"`
}

func (r *roomReq) validate() string {
	if strings.TrimSpace(r.Number) == "" {
		return "number required"
	}
	if !model.ValidRoomType(r.Type) {
		return "invalid room type"
	}
	if r.NightlyRate == nil || *r.NightlyRate < 0 {
		return "nightly_rate must be non-negative"
	}
	if r.Capacity == nil || *r.Capacity == 0 {
		return "capacity must be positive"
	}
	if r.Status != "" && !model.ValidRoomStatus(r.Status) {
		return "invalid room status"
	}
	return ""
}

// Create adds a room.  Status defaults to AVAILABLE when omitted.
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	status := req.Status
	if status == "" {
		status = model.RoomAvailable
	}
	room := model.Room{
		Number:      strings.TrimSpace(req.Number),
		Type:        req.Type,
		NightlyRate: *req.NightlyRate,
		Capacity:    *req.Capacity,
		Status:      status,
	}
	if err := h.Rooms.Create(ctx, &room); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// List returns all rooms with their effective status.  An optional
// ?status= query filters on the effective value.
func (h *RoomHandler) List(c echo.Context) error {
	filter := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if filter != "" && !model.ValidRoomStatus(filter) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return writeError(c, err)
	}

	today := h.Clock.Now()
	out := make([]model.Room, 0, len(rooms))
	for i := range rooms {
		effective, err := h.Reconciler.EffectiveStatus(ctx, &rooms[i], today)
		if err != nil {
			return writeError(c, err)
		}
		rooms[i].Status = effective
		if filter != "" && effective != filter {
			continue
		}
		out = append(out, rooms[i])
	}
	return c.JSON(http.StatusOK, out)
}

// GetOne returns a single room with its effective status.
func (h *RoomHandler) GetOne(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	effective, err := h.Reconciler.EffectiveStatus(ctx, room, h.Clock.Now())
	if err != nil {
		return writeError(c, err)
	}
	room.Status = effective
	return c.JSON(http.StatusOK, room)
}

// Update replaces all mutable room fields.  This is the only endpoint
// that can set or clear MAINTENANCE; after the write the room is
// reconciled so the cached status converges immediately.
func (h *RoomHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	room.Number = strings.TrimSpace(req.Number)
	room.Type = req.Type
	room.NightlyRate = *req.NightlyRate
	room.Capacity = *req.Capacity
	if req.Status != "" {
		room.Status = req.Status
	}
	if err := h.Rooms.Update(ctx, room); err != nil {
		return writeError(c, err)
	}
	// Converge the cache right away; when maintenance was just cleared
	// this re-derives OCCUPIED/AVAILABLE from today's reservations.
	if err := h.Reconciler.ReconcileOne(ctx, id); err != nil {
		return writeError(c, err)
	}
	room, err = h.Rooms.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete removes a room.  Rooms referenced by reservations answer 409.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SyncStatus runs one reconciliation sweep on demand and reports its
// summary.  The same sweep also runs in the background on a timer; this
// endpoint exists for operators who want the cache corrected now.
func (h *RoomHandler) SyncStatus(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	sum, err := h.Reconciler.ReconcileAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}
