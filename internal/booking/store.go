package booking

import (
	"context"
	"time"

	"github.com/iliyamo/hotel-back-office/internal/model"
)

// ReservationStore is the slice of the reservation repository the core
// depends on.  CountOverlapping is the only place overlap semantics are
// queried; it must implement the half-open predicate documented on
// Overlaps and ignore cancelled reservations.  excludeID, when non-zero,
// removes that reservation from consideration (editing a reservation
// against itself).
type ReservationStore interface {
	CountOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error)

	// CountActiveOn reports how many CONFIRMED or CHECKED_IN
	// reservations on the room cover the given day.
	CountActiveOn(ctx context.Context, roomID uint64, day time.Time) (int, error)

	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)

	// Create persists a new reservation.  Implementations must make the
	// overlap re-check and the insert atomic (the repository locks the
	// room row and re-counts inside one transaction) and return
	// ErrRoomUnavailable when a conflicting reservation won the race.
	Create(ctx context.Context, res *model.Reservation) error

	// Update persists changed fields of an existing reservation under
	// the same overlap re-check guarantee as Create.
	Update(ctx context.Context, res *model.Reservation) error

	// Delete removes a reservation and returns the removed row.  The
	// read and the delete happen in one transaction so the caller can
	// reconcile the right room even under concurrent deletes.  Returns
	// ErrReservationNotFound when no such reservation exists.
	Delete(ctx context.Context, id uint64) (*model.Reservation, error)
}

// RoomStore is the slice of the room repository the core depends on.
type RoomStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)

	// UpdateStatus writes the cached status column.
	UpdateStatus(ctx context.Context, id uint64, status string) error

	// IDs lists every room identifier, for the reconciliation sweep.
	IDs(ctx context.Context) ([]uint64, error)
}

// ClientStore is limited to the existence check the lifecycle manager
// performs before creating a reservation.
type ClientStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Client, error)
}
