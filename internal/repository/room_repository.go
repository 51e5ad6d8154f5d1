package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel-redisons/service-hotel/internal/domain"
	roomDomain "github.com/hotel-redisons/service-hotel/internal/domain/room"
)

// RoomModel is the GORM model for the rooms table. The (owner_id, room_no)
// unique index backs the per-owner room number invariant.
type RoomModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_rooms_owner_room_no"`
	RoomNo    int             `gorm:"not null;uniqueIndex:idx_rooms_owner_room_no"`
	Name      string          `gorm:"not null;size:200"`
	RoomType  string          `gorm:"not null;size:20"`
	Price     float64         `gorm:"not null"`
	Capacity  int             `gorm:"not null;default:1"`
	Features  json.RawMessage `gorm:"type:jsonb;not null"`
	ImageURL  string          `gorm:"not null;size:500"`
	Status    string          `gorm:"not null;size:20;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string {
	return "rooms"
}

// GormRoomRepository is the GORM-based implementation of room.Repository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID retrieves a room by ID within the owner's scope.
func (r *GormRoomRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toDomainRoom(&model)
}

// FindByRoomNo retrieves the owner's room with the given number, or (nil, nil).
func (r *GormRoomRepository) FindByRoomNo(ctx context.Context, ownerID uuid.UUID, roomNo int) (*roomDomain.Room, error) {
	var model RoomModel
	err := r.db.WithContext(ctx).Where("owner_id = ? AND room_no = ?", ownerID, roomNo).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find room by number: %w", err)
	}
	return toDomainRoom(&model)
}

// FindByOwner retrieves the owner's rooms sorted by room number ascending.
func (r *GormRoomRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter roomDomain.ListFilter) ([]*roomDomain.Room, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.RoomType != nil {
		query = query.Where("room_type = ?", string(*filter.RoomType))
	}

	var models []RoomModel
	if err := query.Order("room_no ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	return toDomainRooms(models)
}

// FindByIDs retrieves the owner's rooms among the given IDs, by room number.
func (r *GormRoomRepository) FindByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]*roomDomain.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []RoomModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Order("room_no ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find rooms by IDs: %w", err)
	}
	return toDomainRooms(models)
}

// FindAvailableExcluding retrieves the owner's available rooms outside the
// excluded ID set.
func (r *GormRoomRepository) FindAvailableExcluding(ctx context.Context, ownerID uuid.UUID, excludeIDs []uuid.UUID) ([]*roomDomain.Room, error) {
	query := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, string(roomDomain.StatusAvailable))
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var models []RoomModel
	if err := query.Order("room_no ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find available rooms: %w", err)
	}
	return toDomainRooms(models)
}

// MaxRoomNo returns the highest room number in the owner's scope, or 0.
func (r *GormRoomRepository) MaxRoomNo(ctx context.Context, ownerID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("owner_id = ?", ownerID).
		Select("MAX(room_no)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to query max room number: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Save persists a new room.
func (r *GormRoomRepository) Save(ctx context.Context, room *roomDomain.Room) error {
	model, err := toRoomModel(room)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError(fmt.Sprintf("room number %d already exists", room.RoomNo()))
		}
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// Update persists changes to an existing room.
func (r *GormRoomRepository) Update(ctx context.Context, room *roomDomain.Room) error {
	model, err := toRoomModel(room)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ? AND owner_id = ?", model.ID, model.OwnerID).
		Updates(map[string]interface{}{
			"room_no":    model.RoomNo,
			"name":       model.Name,
			"room_type":  model.RoomType,
			"price":      model.Price,
			"capacity":   model.Capacity,
			"features":   model.Features,
			"image_url":  model.ImageURL,
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError(fmt.Sprintf("room number %d already exists", room.RoomNo()))
		}
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Room", room.ID().String())
	}
	return nil
}

// Delete removes the room within the owner's scope.
func (r *GormRoomRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&RoomModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Room", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toRoomModel(room *roomDomain.Room) (*RoomModel, error) {
	features, err := json.Marshal(room.Features())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal room features: %w", err)
	}
	return &RoomModel{
		ID:        room.ID(),
		OwnerID:   room.OwnerID(),
		RoomNo:    room.RoomNo(),
		Name:      room.Name(),
		RoomType:  string(room.RoomType()),
		Price:     room.Price(),
		Capacity:  room.Capacity(),
		Features:  features,
		ImageURL:  room.ImageURL(),
		Status:    string(room.Status()),
		CreatedAt: room.CreatedAt(),
		UpdatedAt: room.UpdatedAt(),
	}, nil
}

func toDomainRoom(m *RoomModel) (*roomDomain.Room, error) {
	var features []string
	if len(m.Features) > 0 {
		if err := json.Unmarshal(m.Features, &features); err != nil {
			return nil, fmt.Errorf("failed to unmarshal room features: %w", err)
		}
	}
	return roomDomain.Reconstruct(
		m.ID,
		m.OwnerID,
		m.RoomNo,
		m.Name,
		roomDomain.Type(m.RoomType),
		m.Price,
		m.Capacity,
		features,
		m.ImageURL,
		roomDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainRooms(models []RoomModel) ([]*roomDomain.Room, error) {
	rooms := make([]*roomDomain.Room, len(models))
	for i := range models {
		room, err := toDomainRoom(&models[i])
		if err != nil {
			return nil, err
		}
		rooms[i] = room
	}
	return rooms, nil
}
