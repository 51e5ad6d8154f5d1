package guest

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for guest records.
type Repository interface {
	// FindByID retrieves a guest by ID within the owner's scope.
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Guest, error)

	// FindByIdentity retrieves the first guest in the owner's pool matching
	// any identity field, or (nil, nil) when there is no match.
	FindByIdentity(ctx context.Context, ownerID uuid.UUID, identity Identity) (*Guest, error)

	// FindByIDs retrieves guests by ID, preserving the input order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Guest, error)

	// FindByOwner retrieves the owner's guests, newest-created first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Guest, error)

	// Save persists a new guest.
	Save(ctx context.Context, g *Guest) error

	// Update persists changes to an existing guest.
	Update(ctx context.Context, g *Guest) error

	// Delete removes the guest within the owner's scope.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
