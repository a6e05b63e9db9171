package booking

import "time"

// Clock supplies the current time to the lifecycle manager and the
// reconciler.  Injecting it keeps "today" out of package-level state
// and makes date-sensitive logic testable.
type Clock interface {
	Now() time.Time
}

// UTCClock is the production Clock.
type UTCClock struct{}

func (UTCClock) Now() time.Time { return time.Now().UTC() }

// DateLayout is the wire format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Day truncates t to its calendar date in UTC, dropping any time
// component.  All range comparisons operate on truncated days so the
// time of day a reservation was entered never affects availability.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights returns the calendar-day difference checkOut - checkIn.  It
// can be zero or negative for invalid ranges; callers decide how to
// report that.
func Nights(checkIn, checkOut time.Time) int {
	return int(Day(checkOut).Sub(Day(checkIn)).Hours() / 24)
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect.  A stay ending on day X never conflicts
// with one starting on day X: the checkout day is vacated and
// rebookable.  This is the single definition of a date conflict; the
// reservation repository's overlap query implements the same predicate
// in SQL.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return Day(aStart).Before(Day(bEnd)) && Day(bStart).Before(Day(aEnd))
}

// Covers reports whether day falls inside the half-open stay
// [checkIn, checkOut).  Used to decide whether a reservation occupies
// its room on a given date.
func Covers(checkIn, checkOut, day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(checkIn)) && d.Before(Day(checkOut))
}
