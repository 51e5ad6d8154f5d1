package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/domain"
	"github.com/hotel-redisons/service-hotel/internal/domain/guest"
)

// GuestService manages the owner's guest pool directly, outside the booking
// flow.
type GuestService struct {
	stores Stores
}

// NewGuestService creates a new GuestService.
func NewGuestService(stores Stores) *GuestService {
	return &GuestService{stores: stores}
}

// Create registers a guest. Any identity-field collision with an existing
// guest is a conflict; the booking flow is the place that reuses matches.
func (s *GuestService) Create(ctx context.Context, ownerID uuid.UUID, in GuestInput) (*GuestDTO, error) {
	existing, err := s.stores.Guests().FindByIdentity(ctx, ownerID, in.Identity())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError(fmt.Sprintf("guest %s is already registered", existing.FullName()))
	}

	g, err := guest.NewGuest(ownerID, in.FullName, in.Identity(), guest.Gender(in.Gender), in.Address)
	if err != nil {
		return nil, err
	}
	if err := s.stores.Guests().Save(ctx, g); err != nil {
		return nil, err
	}

	dto := ToGuestDTO(g)
	return &dto, nil
}

// List retrieves the owner's guests, newest first.
func (s *GuestService) List(ctx context.Context, ownerID uuid.UUID) ([]GuestDTO, error) {
	guests, err := s.stores.Guests().FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToGuestDTOs(guests), nil
}

// Get retrieves one guest.
func (s *GuestService) Get(ctx context.Context, ownerID, id uuid.UUID) (*GuestDTO, error) {
	g, err := s.stores.Guests().FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	dto := ToGuestDTO(g)
	return &dto, nil
}

// Update applies a partial update to the guest record. Changed identity
// fields are checked against the rest of the pool first, so the caller learns
// which field collides; the unique indexes remain the backstop under
// concurrency.
func (s *GuestService) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateGuestInput) (*GuestDTO, error) {
	g, err := s.stores.Guests().FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	identity := guest.Identity{Email: in.Email, ContactNumber: in.ContactNumber, CNIC: in.CNIC}
	if err := s.checkIdentityFree(ctx, ownerID, id, identity); err != nil {
		return nil, err
	}
	if err := g.Update(in.FullName, identity, guest.Gender(in.Gender), in.Address); err != nil {
		return nil, err
	}
	if err := s.stores.Guests().Update(ctx, g); err != nil {
		return nil, err
	}

	dto := ToGuestDTO(g)
	return &dto, nil
}

// checkIdentityFree looks up the pool with just the changed identity fields and
// reports the colliding field when another guest already uses one of them.
func (s *GuestService) checkIdentityFree(ctx context.Context, ownerID, id uuid.UUID, changed guest.Identity) error {
	if changed == (guest.Identity{}) {
		return nil
	}
	existing, err := s.stores.Guests().FindByIdentity(ctx, ownerID, changed)
	if err != nil {
		return err
	}
	if existing == nil || existing.ID() == id {
		return nil
	}

	field := "CNIC"
	switch {
	case changed.Email != "" && changed.Email == existing.Identity().Email:
		field = "email"
	case changed.ContactNumber != "" && changed.ContactNumber == existing.Identity().ContactNumber:
		field = "contact number"
	}
	return domain.NewConflictError(fmt.Sprintf("%s already belongs to guest %s", field, existing.FullName()))
}

// Delete removes a guest, refusing while any booking still references them.
func (s *GuestService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.stores.InTx(ctx, func(tx Stores) error {
		g, err := tx.Guests().FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		referencing, err := tx.Bookings().CountReferencing(ctx, g.ID(), uuid.Nil)
		if err != nil {
			return err
		}
		if referencing > 0 {
			return domain.NewConflictError(fmt.Sprintf("guest %s still has %d booking(s)", g.FullName(), referencing))
		}
		return tx.Guests().Delete(ctx, ownerID, id)
	})
}
