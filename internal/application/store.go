package application

import (
	"context"

	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
	"github.com/hotel-redisons/service-hotel/internal/domain/guest"
	"github.com/hotel-redisons/service-hotel/internal/domain/room"
)

// Stores bundles the repositories behind a single unit-of-work boundary.
// InTx runs fn against a transactional view of the same stores; writes are
// committed only if fn returns nil. Booking creation and updates run their
// overlap check and insert inside one serializable transaction so two
// concurrent requests for the same guest and dates cannot both commit.
type Stores interface {
	Bookings() booking.Repository
	Guests() guest.Repository
	Rooms() room.Repository

	InTx(ctx context.Context, fn func(Stores) error) error
}
