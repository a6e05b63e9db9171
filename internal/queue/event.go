package queue

// ReservationConfirmedEvent is published when a reservation is booked.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID uint64  `json:"reservation_id"`
	ClientID      uint64  `json:"client_id"`
	ClientName    string  `json:"client_name"`
	RoomID        uint64  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	TotalPrice    float64 `json:"total_price"`
	ConfirmedAt   string  `json:"confirmed_at"`
}
