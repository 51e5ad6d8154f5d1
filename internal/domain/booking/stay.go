package booking

import (
	"time"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

// Stay is a half-open date range [CheckIn, CheckOut): the checkout day is
// exclusive, so back-to-back stays on the same room do not overlap.
type Stay struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewStay validates and creates a stay range.
func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Stay{}, domain.NewValidationError("check-in and check-out dates are required")
	}
	if !checkIn.Before(checkOut) {
		return Stay{}, domain.NewValidationError("check-in must be before check-out")
	}
	return Stay{checkIn: checkIn.UTC(), checkOut: checkOut.UTC()}, nil
}

// CheckIn returns the inclusive start of the stay.
func (s Stay) CheckIn() time.Time { return s.checkIn }

// CheckOut returns the exclusive end of the stay.
func (s Stay) CheckOut() time.Time { return s.checkOut }

// IsZero reports whether the stay is the zero value.
func (s Stay) IsZero() bool { return s.checkIn.IsZero() && s.checkOut.IsZero() }

// Overlaps reports whether two stays intersect. Ranges are half-open:
// s overlaps o iff s.checkIn < o.checkOut && o.checkIn < s.checkOut.
func (s Stay) Overlaps(o Stay) bool {
	return s.checkIn.Before(o.checkOut) && o.checkIn.Before(s.checkOut)
}

// StartOfDay truncates t to midnight UTC. Bookings whose checkout is on or
// after this instant count as current or future.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
