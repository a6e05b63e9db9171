package booking

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/hotel-back-office/internal/model"
)

// Manager orchestrates the reservation lifecycle.  Every operation runs
// the same pipeline: validate dates, check the room, check
// availability, price the stay, persist, then hand the affected room(s)
// to the Reconciler.  Room status is never set directly from here; the
// reconciler's today-relative computation is the only writer, so a
// confirmed reservation for a future date range does not flip its room
// to OCCUPIED ahead of time.
type Manager struct {
	reservations ReservationStore
	rooms        RoomStore
	clients      ClientStore
	clock        Clock
	reconciler   *Reconciler
}

// NewManager wires the lifecycle manager.  All dependencies must be
// non-nil.
func NewManager(reservations ReservationStore, rooms RoomStore, clients ClientStore, clock Clock, rec *Reconciler) *Manager {
	if reservations == nil || rooms == nil || clients == nil || clock == nil || rec == nil {
		panic("nil dependency passed to NewManager")
	}
	return &Manager{reservations: reservations, rooms: rooms, clients: clients, clock: clock, reconciler: rec}
}

// Reservation state machine.  Self-transitions are accepted as no-ops
// so an update that only moves dates does not have to repeat the
// status.  Anything not listed is rejected with ErrInvalidTransition.
var allowedTransitions = map[string][]string{
	model.ReservationConfirmed:  {model.ReservationCheckedIn, model.ReservationCancelled},
	model.ReservationCheckedIn:  {model.ReservationCheckedOut, model.ReservationCancelled},
	model.ReservationCheckedOut: {},
	model.ReservationCancelled:  {},
}

func transitionAllowed(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CreateInput carries the caller-supplied fields for a new reservation.
// Total price and status are derived, never user-supplied.
type CreateInput struct {
	ClientID uint64
	RoomID   uint64
	CheckIn  time.Time
	CheckOut time.Time
}

// Create books a stay.  It fails with ErrInvalidDateRange,
// ErrClientNotFound, ErrRoomNotFound, ErrRoomUnderMaintenance or
// ErrRoomUnavailable before anything is written.  On success the
// reservation is persisted as CONFIRMED and the room's cached status is
// reconciled.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	if Nights(in.CheckIn, in.CheckOut) <= 0 {
		return nil, ErrInvalidDateRange
	}
	room, err := m.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if _, err := m.clients.GetByID(ctx, in.ClientID); err != nil {
		return nil, err
	}
	// Effective MAINTENANCE can only come from the stored flag, so the
	// cached value is authoritative for this check.
	if room.Status == model.RoomMaintenance {
		return nil, ErrRoomUnderMaintenance
	}
	n, err := m.reservations.CountOverlapping(ctx, in.RoomID, in.CheckIn, in.CheckOut, 0)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrRoomUnavailable
	}
	stay, err := ComputeStay(in.CheckIn, in.CheckOut, room.NightlyRate)
	if err != nil {
		return nil, err
	}
	res := &model.Reservation{
		ClientID:   in.ClientID,
		RoomID:     in.RoomID,
		CheckIn:    Day(in.CheckIn),
		CheckOut:   Day(in.CheckOut),
		TotalPrice: stay.TotalPrice,
		Status:     model.ReservationConfirmed,
	}
	// The store re-checks the overlap under a room lock, closing the
	// window between the count above and the insert.
	if err := m.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	m.reconcile(ctx, res.RoomID)
	return res, nil
}

// UpdateInput carries a partial reservation update.  Nil fields keep
// the existing value.
type UpdateInput struct {
	ClientID *uint64
	RoomID   *uint64
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *string
}

// Update merges the supplied fields over the stored reservation,
// re-validates the date order and the state machine, re-checks
// availability excluding the reservation itself, re-prices the stay
// against the (possibly new) room's current rate, persists, and
// reconciles the affected room(s).
func (m *Manager) Update(ctx context.Context, id uint64, in UpdateInput) (*model.Reservation, error) {
	res, err := m.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldRoomID := res.RoomID

	if in.ClientID != nil && *in.ClientID != res.ClientID {
		if _, err := m.clients.GetByID(ctx, *in.ClientID); err != nil {
			return nil, err
		}
		res.ClientID = *in.ClientID
	}
	if in.RoomID != nil {
		res.RoomID = *in.RoomID
	}
	if in.CheckIn != nil {
		res.CheckIn = Day(*in.CheckIn)
	}
	if in.CheckOut != nil {
		res.CheckOut = Day(*in.CheckOut)
	}
	if in.Status != nil {
		if !model.ValidReservationStatus(*in.Status) {
			return nil, ErrInvalidTransition
		}
		if !transitionAllowed(res.Status, *in.Status) {
			return nil, ErrInvalidTransition
		}
		res.Status = *in.Status
	}
	if Nights(res.CheckIn, res.CheckOut) <= 0 {
		return nil, ErrInvalidDateRange
	}
	room, err := m.rooms.GetByID(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}
	n, err := m.reservations.CountOverlapping(ctx, res.RoomID, res.CheckIn, res.CheckOut, res.ID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrRoomUnavailable
	}
	stay, err := ComputeStay(res.CheckIn, res.CheckOut, room.NightlyRate)
	if err != nil {
		return nil, err
	}
	res.TotalPrice = stay.TotalPrice

	if err := m.reservations.Update(ctx, res); err != nil {
		return nil, err
	}
	m.reconcile(ctx, res.RoomID)
	if oldRoomID != res.RoomID {
		m.reconcile(ctx, oldRoomID)
	}
	return res, nil
}

// Delete removes a reservation (hard delete) and reconciles its room.
// The store performs the read and the delete in one transaction so the
// room reconciled here is the one the removed row actually referenced.
func (m *Manager) Delete(ctx context.Context, id uint64) error {
	res, err := m.reservations.Delete(ctx, id)
	if err != nil {
		return err
	}
	m.reconcile(ctx, res.RoomID)
	return nil
}

// reconcile refreshes one room's cached status after a mutation.  A
// failure here leaves a stale cache until the next sweep, which is the
// accepted staleness window, so it is logged rather than surfaced.
func (m *Manager) reconcile(ctx context.Context, roomID uint64) {
	if err := m.reconciler.ReconcileOne(ctx, roomID); err != nil {
		log.Printf("booking: reconcile room %d after mutation: %v", roomID, err)
	}
}
