package model

import "time"

// Room types mirror the rooms.room_type enum.
const (
	RoomTypeSingle = "SINGLE"
	RoomTypeDouble = "DOUBLE"
	RoomTypeCouple = "COUPLE"
	RoomTypeSuite  = "SUITE"
)

// Room statuses mirror the rooms.status enum.  The stored status is a
// cache of the value derived from the reservation ledger; MAINTENANCE is
// the only value that is set manually and it is never cleared by the
// reconciliation sweep.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
)

// Room describes a bookable hotel room.  Number is the unique display
// label shown to staff (e.g. "101").  NightlyRate is the flat price per
// night in the hotel's currency and must be non-negative.
//
// Fields:
//  ID          – primary key identifier.
//  Number      – unique room number label.
//  Type        – room type (SINGLE, DOUBLE, COUPLE, SUITE).
//  NightlyRate – flat price per night, two decimal places.
//  Capacity    – maximum number of guests, positive.
//  Status      – cached status (AVAILABLE, OCCUPIED, MAINTENANCE).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
	ID          uint64    `json:"id"`           // rooms.id
	Number      string    `json:"number"`       // rooms.number
	Type        string    `json:"type"`         // rooms.room_type
	NightlyRate float64   `json:"nightly_rate"` // rooms.nightly_rate
	Capacity    uint32    `json:"capacity"`     // rooms.capacity
	Status      string    `json:"status"`       // rooms.status
	CreatedAt   time.Time `json:"-"`            // rooms.created_at
	UpdatedAt   time.Time `json:"-"`            // rooms.updated_at
}

// ValidRoomType reports whether t is one of the known room types.
func ValidRoomType(t string) bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeCouple, RoomTypeSuite:
		return true
	}
	return false
}

// ValidRoomStatus reports whether s is one of the known room statuses.
func ValidRoomStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}
