// Package booking implements the reservation core of the hotel
// back-office: availability checking, stay pricing, the reservation
// lifecycle state machine, and the room status reconciler.  It talks to
// storage only through the small store interfaces in store.go so the
// rules stay testable without a database.
package booking

import "errors"

// Sentinel errors returned by the booking core.  Handlers translate
// them into HTTP statuses: validation failures map to 400, missing
// entities to 404, business conflicts to 409 and store failures to 500.
var (
	// ErrInvalidDateRange is returned when checkout is not strictly
	// after check-in.
	ErrInvalidDateRange = errors.New("check-out must be after check-in")

	// ErrInvalidRate is returned when a nightly rate is negative or not
	// a finite number.
	ErrInvalidRate = errors.New("nightly rate must be a non-negative finite number")

	// ErrInvalidTransition is returned when a status update does not
	// follow the reservation state machine.
	ErrInvalidTransition = errors.New("invalid reservation status transition")

	ErrRoomNotFound        = errors.New("room not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrRoomUnavailable signals a date overlap with an existing
	// non-cancelled reservation on the same room.
	ErrRoomUnavailable = errors.New("room is not available for the requested dates")

	// ErrRoomUnderMaintenance signals that the room's effective status
	// is MAINTENANCE and it cannot be booked.
	ErrRoomUnderMaintenance = errors.New("room is under maintenance")
)
