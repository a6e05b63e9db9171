package booking

import (
	"math"
	"time"
)

// Stay is the result of pricing a date range against a nightly rate.
type Stay struct {
	Nights     int
	TotalPrice float64
}

// ComputeStay derives the night count and total price for a stay.  The
// night count is the calendar-day difference between checkout and
// check-in; time of day is ignored.  The total is nights × nightlyRate
// rounded half-up at the cent boundary.  It is a pure function: callers
// validate room existence and availability separately.
func ComputeStay(checkIn, checkOut time.Time, nightlyRate float64) (Stay, error) {
	if nightlyRate < 0 || math.IsNaN(nightlyRate) || math.IsInf(nightlyRate, 0) {
		return Stay{}, ErrInvalidRate
	}
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return Stay{}, ErrInvalidDateRange
	}
	return Stay{
		Nights:     nights,
		TotalPrice: roundCents(float64(nights) * nightlyRate),
	}, nil
}

// roundCents rounds to two decimal places, half-up.
func roundCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
