package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/domain"
	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
	"github.com/hotel-redisons/service-hotel/internal/domain/guest"
)

// GuestResolver maps incoming guest details onto the owner's guest pool.
// A match on any single identity field (email, contact number or CNIC) means
// the input refers to that existing guest; the remaining fields must then
// agree, otherwise the request is rejected rather than silently forking the
// record.
type GuestResolver struct{}

// NewGuestResolver creates a new GuestResolver.
func NewGuestResolver() *GuestResolver {
	return &GuestResolver{}
}

// Resolve maps each input to an existing or newly registered guest, in input
// order, and returns the ID of the guest flagged primary (uuid.Nil when none
// is). The flag is read from the request only; a guest's role on other
// bookings never bleeds into this one. New guests are persisted through the
// given repository, so callers run this inside the booking transaction.
func (r *GuestResolver) Resolve(ctx context.Context, guests guest.Repository, ownerID uuid.UUID, inputs []GuestInput) ([]*guest.Guest, uuid.UUID, error) {
	if err := validatePrimaryCount(countPrimaries(inputs)); err != nil {
		return nil, uuid.Nil, err
	}

	resolved := make([]*guest.Guest, 0, len(inputs))
	primaryID := uuid.Nil
	for _, in := range inputs {
		g, err := r.resolveOne(ctx, guests, ownerID, in)
		if err != nil {
			return nil, uuid.Nil, err
		}
		if in.IsPrimary {
			primaryID = g.ID()
		}
		resolved = append(resolved, g)
	}
	return resolved, primaryID, nil
}

// ResolveUpdate handles the mixed guest list of a booking update: entries
// carrying only an ID keep that existing guest unchanged, entries with
// personal details are resolved like on create. Order is preserved across
// both kinds.
func (r *GuestResolver) ResolveUpdate(ctx context.Context, guests guest.Repository, ownerID uuid.UUID, entries []UpdateGuestEntry) ([]*guest.Guest, uuid.UUID, error) {
	primaries := 0
	for _, e := range entries {
		if e.IsPrimary {
			primaries++
		}
	}
	if err := validatePrimaryCount(primaries); err != nil {
		return nil, uuid.Nil, err
	}

	resolved := make([]*guest.Guest, 0, len(entries))
	primaryID := uuid.Nil
	for _, e := range entries {
		var (
			g   *guest.Guest
			err error
		)
		switch {
		case e.keepsExisting():
			g, err = guests.FindByID(ctx, ownerID, *e.ID)
		case e.hasDetails():
			g, err = r.resolveOne(ctx, guests, ownerID, e.toGuestInput())
		default:
			return nil, uuid.Nil, domain.NewValidationError("guest entry needs either an id or full guest details")
		}
		if err != nil {
			return nil, uuid.Nil, err
		}
		if e.IsPrimary {
			primaryID = g.ID()
		}
		resolved = append(resolved, g)
	}
	return resolved, primaryID, nil
}

// EnsureNoOverlaps rejects the stay if any of the guests already holds a
// non-cancelled booking overlapping it. excludeBookingID skips the booking
// being updated; pass uuid.Nil on create.
func (r *GuestResolver) EnsureNoOverlaps(ctx context.Context, bookings booking.Repository, guests []*guest.Guest, stay booking.Stay, excludeBookingID uuid.UUID) error {
	for _, g := range guests {
		overlaps, err := bookings.HasOverlapping(ctx, g.ID(), stay, excludeBookingID)
		if err != nil {
			return err
		}
		if overlaps {
			return domain.NewConflictError(fmt.Sprintf(
				"guest %s already has a booking overlapping %s to %s",
				g.FullName(),
				stay.CheckIn().Format("2006-01-02"),
				stay.CheckOut().Format("2006-01-02")))
		}
	}
	return nil
}

func (r *GuestResolver) resolveOne(ctx context.Context, guests guest.Repository, ownerID uuid.UUID, in GuestInput) (*guest.Guest, error) {
	existing, err := guests.FindByIdentity(ctx, ownerID, in.Identity())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.Identity().Equals(in.Identity()) {
			return nil, domain.NewConflictError(fmt.Sprintf(
				"guest details conflict with existing guest %s", existing.FullName()))
		}
		return existing, nil
	}

	g, err := guest.NewGuest(ownerID, in.FullName, in.Identity(), guest.Gender(in.Gender), in.Address)
	if err != nil {
		return nil, err
	}
	if err := guests.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func countPrimaries(inputs []GuestInput) int {
	primaries := 0
	for _, in := range inputs {
		if in.IsPrimary {
			primaries++
		}
	}
	return primaries
}

func validatePrimaryCount(primaries int) error {
	if primaries > 1 {
		return domain.NewValidationError("only one primary guest allowed")
	}
	return nil
}
