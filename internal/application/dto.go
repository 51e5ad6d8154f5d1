package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
	"github.com/hotel-redisons/service-hotel/internal/domain/guest"
	"github.com/hotel-redisons/service-hotel/internal/domain/room"
)

// GuestInput carries the identity and profile of one guest on a booking
// request. The service resolves it against the owner's guest pool before
// deciding whether to reuse or register.
type GuestInput struct {
	FullName      string `json:"fullName" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	CNIC          string `json:"cnic" binding:"required"`
	Gender        string `json:"gender" binding:"required"`
	Address       string `json:"address" binding:"required"`
	IsPrimary     bool   `json:"isPrimaryGuest"`
}

// Identity extracts the identifying triple from the input.
func (in GuestInput) Identity() guest.Identity {
	return guest.Identity{
		Email:         in.Email,
		ContactNumber: in.ContactNumber,
		CNIC:          in.CNIC,
	}
}

// CreateBookingInput is the request payload for creating a booking.
type CreateBookingInput struct {
	RoomID      uuid.UUID    `json:"roomId" binding:"required"`
	CheckIn     time.Time    `json:"checkIn" binding:"required"`
	CheckOut    time.Time    `json:"checkOut" binding:"required"`
	TotalAmount float64      `json:"totalAmount"`
	PaidAmount  float64      `json:"paidAmount"`
	Guests      []GuestInput `json:"guests" binding:"required,min=1,dive"`
}

// UpdateBookingInput is the request payload for partially updating a booking.
// Nil fields are left unchanged. A non-nil Guests slice replaces the whole
// guest list.
type UpdateBookingInput struct {
	RoomID        *uuid.UUID         `json:"roomId"`
	CheckIn       *time.Time         `json:"checkIn"`
	CheckOut      *time.Time         `json:"checkOut"`
	TotalAmount   *float64           `json:"totalAmount"`
	PaidAmount    *float64           `json:"paidAmount"`
	Status        *string            `json:"status"`
	PaymentStatus *string            `json:"paymentStatus"`
	Guests        []UpdateGuestEntry `json:"guests"`
}

// UpdateGuestEntry is one entry in an updated guest list. An entry carrying
// just an ID keeps that guest on the booking unchanged; an entry with
// personal details is resolved against the guest pool like on create. The
// primary flag applies either way.
type UpdateGuestEntry struct {
	ID            *uuid.UUID `json:"id"`
	FullName      string     `json:"fullName"`
	Email         string     `json:"email"`
	ContactNumber string     `json:"contactNumber"`
	CNIC          string     `json:"cnic"`
	Gender        string     `json:"gender"`
	Address       string     `json:"address"`
	IsPrimary     bool       `json:"isPrimaryGuest"`
}

func (e UpdateGuestEntry) hasDetails() bool {
	return e.FullName != "" || e.Email != "" || e.ContactNumber != "" ||
		e.CNIC != "" || e.Gender != "" || e.Address != ""
}

func (e UpdateGuestEntry) keepsExisting() bool {
	return e.ID != nil && !e.hasDetails()
}

func (e UpdateGuestEntry) toGuestInput() GuestInput {
	return GuestInput{
		FullName:      e.FullName,
		Email:         e.Email,
		ContactNumber: e.ContactNumber,
		CNIC:          e.CNIC,
		Gender:        e.Gender,
		Address:       e.Address,
		IsPrimary:     e.IsPrimary,
	}
}

// ListBookingsInput filters an owner's booking listing.
type ListBookingsInput struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"paymentStatus"`
}

// CreateRoomInput is the request payload for registering a room. RoomNo 0
// means auto-assign.
type CreateRoomInput struct {
	RoomNo   int      `json:"roomNo"`
	Name     string   `json:"name" binding:"required"`
	RoomType string   `json:"roomType" binding:"required"`
	Price    float64  `json:"price" binding:"required"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features"`
	ImageURL string   `json:"imageUrl" binding:"required"`
}

// UpdateRoomInput is the request payload for partially updating a room.
type UpdateRoomInput struct {
	Name     string   `json:"name"`
	RoomType string   `json:"roomType"`
	Price    float64  `json:"price"`
	Capacity int      `json:"capacity"`
	Features []string `json:"features"`
	ImageURL string   `json:"imageUrl"`
	Status   string   `json:"status"`
}

// ListRoomsInput filters an owner's room listing.
type ListRoomsInput struct {
	Status   string `form:"status"`
	RoomType string `form:"roomType"`
}

// UpdateGuestInput is the request payload for partially updating a guest.
type UpdateGuestInput struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	CNIC          string `json:"cnic"`
	Gender        string `json:"gender"`
	Address       string `json:"address"`
}

// GuestDTO is the API representation of a guest.
type GuestDTO struct {
	ID            uuid.UUID `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	ContactNumber string    `json:"contactNumber"`
	CNIC          string    `json:"cnic"`
	Gender        string    `json:"gender"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToGuestDTO converts a domain guest to its API representation.
func ToGuestDTO(g *guest.Guest) GuestDTO {
	identity := g.Identity()
	return GuestDTO{
		ID:            g.ID(),
		FullName:      g.FullName(),
		Email:         identity.Email,
		ContactNumber: identity.ContactNumber,
		CNIC:          identity.CNIC,
		Gender:        string(g.Gender()),
		Address:       g.Address(),
		CreatedAt:     g.CreatedAt(),
		UpdatedAt:     g.UpdatedAt(),
	}
}

// ToGuestDTOs converts a slice of domain guests.
func ToGuestDTOs(guests []*guest.Guest) []GuestDTO {
	dtos := make([]GuestDTO, len(guests))
	for i, g := range guests {
		dtos[i] = ToGuestDTO(g)
	}
	return dtos
}

// RoomDTO is the API representation of a room.
type RoomDTO struct {
	ID        uuid.UUID `json:"id"`
	RoomNo    int       `json:"roomNo"`
	Name      string    `json:"name"`
	RoomType  string    `json:"roomType"`
	Price     float64   `json:"price"`
	Capacity  int       `json:"capacity"`
	Features  []string  `json:"features"`
	ImageURL  string    `json:"imageUrl"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToRoomDTO converts a domain room to its API representation.
func ToRoomDTO(r *room.Room) RoomDTO {
	return RoomDTO{
		ID:        r.ID(),
		RoomNo:    r.RoomNo(),
		Name:      r.Name(),
		RoomType:  string(r.RoomType()),
		Price:     r.Price(),
		Capacity:  r.Capacity(),
		Features:  r.Features(),
		ImageURL:  r.ImageURL(),
		Status:    string(r.Status()),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}
}

// ToRoomDTOs converts a slice of domain rooms.
func ToRoomDTOs(rooms []*room.Room) []RoomDTO {
	dtos := make([]RoomDTO, len(rooms))
	for i, r := range rooms {
		dtos[i] = ToRoomDTO(r)
	}
	return dtos
}

// BookingGuestDTO is a guest as listed on one booking, carrying that
// booking's primary-contact flag.
type BookingGuestDTO struct {
	GuestDTO
	IsPrimaryGuest bool `json:"isPrimaryGuest"`
}

// BookingDTO is the API representation of a booking with its guest list
// expanded.
type BookingDTO struct {
	ID            uuid.UUID         `json:"id"`
	RoomID        uuid.UUID         `json:"roomId"`
	CheckIn       time.Time         `json:"checkIn"`
	CheckOut      time.Time         `json:"checkOut"`
	TotalAmount   float64           `json:"totalAmount"`
	PaidAmount    float64           `json:"paidAmount"`
	PaymentStatus string            `json:"paymentStatus"`
	Status        string            `json:"status"`
	Guests        []BookingGuestDTO `json:"guests"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ToBookingDTO converts a domain booking and its resolved guests. The
// booking's primary guest is flagged in the rendered list.
func ToBookingDTO(b *booking.Booking, guests []*guest.Guest) BookingDTO {
	guestDTOs := make([]BookingGuestDTO, len(guests))
	for i, g := range guests {
		guestDTOs[i] = BookingGuestDTO{
			GuestDTO:       ToGuestDTO(g),
			IsPrimaryGuest: g.ID() == b.PrimaryGuestID(),
		}
	}
	return BookingDTO{
		ID:            b.ID(),
		RoomID:        b.RoomID(),
		CheckIn:       b.Stay().CheckIn(),
		CheckOut:      b.Stay().CheckOut(),
		TotalAmount:   b.TotalAmount(),
		PaidAmount:    b.PaidAmount(),
		PaymentStatus: string(b.PaymentStatus()),
		Status:        string(b.Status()),
		Guests:        guestDTOs,
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}
