package room

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows an owner's room listing.
type ListFilter struct {
	Status   *Status
	RoomType *Type
}

// Repository defines the persistence contract for rooms.
type Repository interface {
	// FindByID retrieves a room by ID within the owner's scope.
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Room, error)

	// FindByRoomNo retrieves the owner's room with the given number, or
	// (nil, nil) when none exists.
	FindByRoomNo(ctx context.Context, ownerID uuid.UUID, roomNo int) (*Room, error)

	// FindByOwner retrieves the owner's rooms sorted by room number ascending.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, filter ListFilter) ([]*Room, error)

	// FindByIDs retrieves the owner's rooms among the given IDs, sorted by
	// room number ascending.
	FindByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]*Room, error)

	// FindAvailableExcluding retrieves the owner's rooms with status
	// "available" whose IDs are not in the excluded set.
	FindAvailableExcluding(ctx context.Context, ownerID uuid.UUID, excludeIDs []uuid.UUID) ([]*Room, error)

	// MaxRoomNo returns the highest room number in the owner's scope, or 0
	// when the owner has no rooms.
	MaxRoomNo(ctx context.Context, ownerID uuid.UUID) (int, error)

	// Save persists a new room.
	Save(ctx context.Context, r *Room) error

	// Update persists changes to an existing room.
	Update(ctx context.Context, r *Room) error

	// Delete removes the room within the owner's scope.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
