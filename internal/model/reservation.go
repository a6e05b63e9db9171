package model

import "time"

// Reservation statuses mirror the reservations.status enum.  A
// reservation is "active" while CONFIRMED or CHECKED_IN; only active
// reservations count against room availability.
const (
	ReservationConfirmed  = "CONFIRMED"
	ReservationCheckedIn  = "CHECKED_IN"
	ReservationCheckedOut = "CHECKED_OUT"
	ReservationCancelled  = "CANCELLED"
)

// Reservation records a client's stay in a room over a half-open date
// range [CheckIn, CheckOut): the checkout day itself is vacated and may
// be rebooked by another reservation starting that day.  TotalPrice is
// computed from the room's nightly rate at booking time and is not
// recomputed when the rate later changes, unless the reservation itself
// is edited.
//
// Fields:
//  ID         – primary key identifier.
//  ClientID   – client who booked the stay.
//  RoomID     – room being occupied.
//  CheckIn    – arrival date (calendar date, no time component).
//  CheckOut   – departure date, strictly after CheckIn.
//  TotalPrice – nights × nightly rate, two decimal places.
//  Status     – state of the reservation (CONFIRMED, CHECKED_IN,
//               CHECKED_OUT, CANCELLED).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
	ID         uint64    // reservations.id
	ClientID   uint64    // reservations.client_id
	RoomID     uint64    // reservations.room_id
	CheckIn    time.Time // reservations.check_in (DATE)
	CheckOut   time.Time // reservations.check_out (DATE)
	TotalPrice float64   // reservations.total_price
	Status     string    // reservations.status
	CreatedAt  time.Time // reservations.created_at
	UpdatedAt  time.Time // reservations.updated_at
}

// ValidReservationStatus reports whether s is one of the known
// reservation statuses.
func ValidReservationStatus(s string) bool {
	switch s {
	case ReservationConfirmed, ReservationCheckedIn, ReservationCheckedOut, ReservationCancelled:
		return true
	}
	return false
}

// ReservationActive reports whether a reservation in status s occupies
// its room (counts for availability and occupancy checks).
func ReservationActive(s string) bool {
	return s == ReservationConfirmed || s == ReservationCheckedIn
}
