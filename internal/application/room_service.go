package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hotel-redisons/service-hotel/internal/domain"
	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
	"github.com/hotel-redisons/service-hotel/internal/domain/room"
)

// RoomService manages the owner's room inventory and answers availability
// queries against the booking calendar.
type RoomService struct {
	stores Stores
	logger *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(stores Stores, logger *zap.Logger) *RoomService {
	return &RoomService{stores: stores, logger: logger}
}

// Create registers a room. Room number 0 means auto-assign: the first room
// gets 101, later rooms get the owner's highest number plus one. The
// assignment runs in a transaction so two concurrent creates cannot pick the
// same number.
func (s *RoomService) Create(ctx context.Context, ownerID uuid.UUID, in CreateRoomInput) (*RoomDTO, error) {
	rm, err := room.NewRoom(ownerID, in.RoomNo, in.Name, room.Type(in.RoomType), in.Price, in.Capacity, in.Features, in.ImageURL)
	if err != nil {
		return nil, err
	}

	err = s.stores.InTx(ctx, func(tx Stores) error {
		if rm.RoomNo() == 0 {
			maxNo, err := tx.Rooms().MaxRoomNo(ctx, ownerID)
			if err != nil {
				return err
			}
			next := room.FirstRoomNo
			if maxNo > 0 {
				next = maxNo + 1
			}
			if err := rm.AssignRoomNo(next); err != nil {
				return err
			}
		}
		return tx.Rooms().Save(ctx, rm)
	})
	if err != nil {
		return nil, err
	}

	dto := ToRoomDTO(rm)
	return &dto, nil
}

// List retrieves the owner's rooms by ascending room number, optionally
// filtered by status and room type.
func (s *RoomService) List(ctx context.Context, ownerID uuid.UUID, in ListRoomsInput) ([]RoomDTO, error) {
	var filter room.ListFilter
	if in.Status != "" {
		status := room.Status(in.Status)
		if !status.IsValid() {
			return nil, domain.NewValidationError("invalid room status filter: " + in.Status)
		}
		filter.Status = &status
	}
	if in.RoomType != "" {
		roomType := room.Type(in.RoomType)
		if !roomType.IsValid() {
			return nil, domain.NewValidationError("invalid room type filter: " + in.RoomType)
		}
		filter.RoomType = &roomType
	}

	rooms, err := s.stores.Rooms().FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return ToRoomDTOs(rooms), nil
}

// Get retrieves one room.
func (s *RoomService) Get(ctx context.Context, ownerID, id uuid.UUID) (*RoomDTO, error) {
	rm, err := s.stores.Rooms().FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	dto := ToRoomDTO(rm)
	return &dto, nil
}

// Update applies a partial update to the room.
func (s *RoomService) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateRoomInput) (*RoomDTO, error) {
	rm, err := s.stores.Rooms().FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := rm.Update(in.Name, room.Type(in.RoomType), in.Price, in.Capacity, in.Features, in.ImageURL, room.Status(in.Status)); err != nil {
		return nil, err
	}
	if err := s.stores.Rooms().Update(ctx, rm); err != nil {
		return nil, err
	}
	dto := ToRoomDTO(rm)
	return &dto, nil
}

// Delete removes the room and every booking on it, each with the usual
// guest-orphan cleanup.
func (s *RoomService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.stores.InTx(ctx, func(tx Stores) error {
		rm, err := tx.Rooms().FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		bookings, err := tx.Bookings().FindByRoom(ctx, ownerID, rm.ID())
		if err != nil {
			return err
		}
		for _, b := range bookings {
			if err := deleteBookingCascade(ctx, tx, b); err != nil {
				return err
			}
		}
		return tx.Rooms().Delete(ctx, ownerID, rm.ID())
	})
}

// SearchAvailable lists the owner's rooms free for the whole stay: status
// "available" and no non-cancelled booking overlapping it. An empty result
// is reported as not found.
func (s *RoomService) SearchAvailable(ctx context.Context, ownerID uuid.UUID, checkIn, checkOut time.Time) ([]RoomDTO, error) {
	stay, err := booking.NewStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	busyIDs, err := s.stores.Bookings().RoomIDsOverlapping(ctx, stay)
	if err != nil {
		return nil, err
	}
	rooms, err := s.stores.Rooms().FindAvailableExcluding(ctx, ownerID, busyIDs)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, &domain.AppError{Kind: domain.KindNotFound, Message: "no rooms available for the requested dates"}
	}
	return ToRoomDTOs(rooms), nil
}

// ListBooked lists rooms holding at least one non-cancelled booking whose
// checkout is today or later.
func (s *RoomService) ListBooked(ctx context.Context, ownerID uuid.UUID) ([]RoomDTO, error) {
	from := booking.StartOfDay(time.Now().UTC())
	roomIDs, err := s.stores.Bookings().RoomIDsWithUpcoming(ctx, from)
	if err != nil {
		return nil, err
	}
	rooms, err := s.stores.Rooms().FindByIDs(ctx, ownerID, roomIDs)
	if err != nil {
		return nil, err
	}
	return ToRoomDTOs(rooms), nil
}
