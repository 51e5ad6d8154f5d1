package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows an owner's booking listing by exact status matches.
type ListFilter struct {
	Status        *Status
	PaymentStatus *PaymentStatus
}

// Repository defines the persistence contract for booking aggregates.
// All lookups by owner are scoped to that owner; guest- and room-keyed
// overlap queries are keyed by entity ID, which is itself owner-scoped.
type Repository interface {
	// FindByID retrieves a booking by ID within the owner's scope.
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Booking, error)

	// FindByOwner retrieves the owner's bookings, newest-created first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Booking, error)

	// FindByRoom retrieves the owner's bookings referencing the given room.
	FindByRoom(ctx context.Context, ownerID, roomID uuid.UUID) ([]*Booking, error)

	// Save persists a new booking and its guest list.
	Save(ctx context.Context, b *Booking) error

	// Update persists changes to an existing booking, replacing its guest list.
	Update(ctx context.Context, b *Booking) error

	// Delete removes the booking within the owner's scope.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// HasOverlapping reports whether the guest has a non-cancelled booking
	// overlapping the stay, ignoring the excluded booking (uuid.Nil excludes
	// nothing).
	HasOverlapping(ctx context.Context, guestID uuid.UUID, stay Stay, excludeBookingID uuid.UUID) (bool, error)

	// CountReferencing counts bookings still referencing the guest, ignoring
	// the excluded booking.
	CountReferencing(ctx context.Context, guestID, excludeBookingID uuid.UUID) (int64, error)

	// RoomIDsOverlapping returns the IDs of rooms with any non-cancelled
	// booking overlapping the stay.
	RoomIDsOverlapping(ctx context.Context, stay Stay) ([]uuid.UUID, error)

	// RoomIDsWithUpcoming returns the IDs of rooms with any non-cancelled
	// booking whose checkout is on or after the given instant.
	RoomIDsWithUpcoming(ctx context.Context, from time.Time) ([]uuid.UUID, error)
}
