package room

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

// Type classifies a room.
type Type string

const (
	TypeSuite    Type = "Suite"
	TypeDeluxe   Type = "Deluxe"
	TypeStandard Type = "Standard"
	TypeFamily   Type = "Family"
)

// IsValid returns true if the value is a recognized room type.
func (t Type) IsValid() bool {
	switch t {
	case TypeSuite, TypeDeluxe, TypeStandard, TypeFamily:
		return true
	}
	return false
}

// Status of a room for booking purposes.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
)

// IsValid returns true if the value is a recognized room status.
func (s Status) IsValid() bool {
	return s == StatusAvailable || s == StatusMaintenance
}

// FirstRoomNo is assigned when an owner creates their first room without an
// explicit number; later rooms get (max existing)+1.
const FirstRoomNo = 101

// Room is an owner-scoped hotel room. RoomNo is unique per owner.
type Room struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	roomNo   int
	name     string
	roomType Type
	price    float64
	capacity int
	features []string
	imageURL string
	status   Status

	createdAt time.Time
	updatedAt time.Time
}

// NewRoom creates a room. A roomNo of 0 means "auto-assign"; the repository
// fills it in at save time.
func NewRoom(
	ownerID uuid.UUID,
	roomNo int,
	name string,
	roomType Type,
	price float64,
	capacity int,
	features []string,
	imageURL string,
) (*Room, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("room name is required")
	}
	if !roomType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
	}
	if price <= 0 {
		return nil, domain.NewValidationError("room price must be positive")
	}
	if roomNo < 0 {
		return nil, domain.NewValidationError("room number must be positive")
	}
	if imageURL == "" {
		return nil, domain.NewValidationError("room image is required")
	}
	if capacity <= 0 {
		capacity = 1
	}

	now := time.Now().UTC()
	return &Room{
		id:        uuid.New(),
		ownerID:   ownerID,
		roomNo:    roomNo,
		name:      name,
		roomType:  roomType,
		price:     price,
		capacity:  capacity,
		features:  append([]string(nil), features...),
		imageURL:  imageURL,
		status:    StatusAvailable,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	roomNo int,
	name string,
	roomType Type,
	price float64,
	capacity int,
	features []string,
	imageURL string,
	status Status,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:        id,
		ownerID:   ownerID,
		roomNo:    roomNo,
		name:      name,
		roomType:  roomType,
		price:     price,
		capacity:  capacity,
		features:  features,
		imageURL:  imageURL,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) OwnerID() uuid.UUID   { return r.ownerID }
func (r *Room) RoomNo() int          { return r.roomNo }
func (r *Room) Name() string         { return r.name }
func (r *Room) RoomType() Type       { return r.roomType }
func (r *Room) Price() float64       { return r.price }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Features() []string   { return append([]string(nil), r.features...) }
func (r *Room) ImageURL() string     { return r.imageURL }
func (r *Room) Status() Status       { return r.status }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

// --- Behavior ---

// AssignRoomNo sets the auto-assigned room number. Only valid while unset.
func (r *Room) AssignRoomNo(roomNo int) error {
	if r.roomNo != 0 {
		return domain.NewConflictError("room number already assigned")
	}
	if roomNo <= 0 {
		return domain.NewValidationError("room number must be positive")
	}
	r.roomNo = roomNo
	return nil
}

// Update applies partial updates to the room.
func (r *Room) Update(
	name string,
	roomType Type,
	price float64,
	capacity int,
	features []string,
	imageURL string,
	status Status,
) error {
	if name != "" {
		r.name = name
	}
	if roomType != "" {
		if !roomType.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid room type: %s", roomType))
		}
		r.roomType = roomType
	}
	if price > 0 {
		r.price = price
	}
	if capacity > 0 {
		r.capacity = capacity
	}
	if features != nil {
		r.features = append([]string(nil), features...)
	}
	if imageURL != "" {
		r.imageURL = imageURL
	}
	if status != "" {
		if !status.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid room status: %s", status))
		}
		r.status = status
	}
	r.updatedAt = time.Now().UTC()
	return nil
}
