package application_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/domain"
	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
	"github.com/hotel-redisons/service-hotel/internal/domain/guest"
	"github.com/hotel-redisons/service-hotel/internal/domain/room"
)

// memStores is an in-memory application.Stores for service tests. InTx runs
// the callback against the same maps; the unit tests are single-threaded, so
// transactionality reduces to running the steps in order.
type memStores struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
	guests   map[uuid.UUID]*guest.Guest
	rooms    map[uuid.UUID]*room.Room
}

func newMemStores() *memStores {
	return &memStores{
		bookings: make(map[uuid.UUID]*booking.Booking),
		guests:   make(map[uuid.UUID]*guest.Guest),
		rooms:    make(map[uuid.UUID]*room.Room),
	}
}

func (s *memStores) Bookings() booking.Repository { return &memBookingRepo{s} }
func (s *memStores) Guests() guest.Repository     { return &memGuestRepo{s} }
func (s *memStores) Rooms() room.Repository       { return &memRoomRepo{s} }

func (s *memStores) InTx(_ context.Context, fn func(application.Stores) error) error {
	return fn(s)
}

// --- bookings ---

type memBookingRepo struct {
	s *memStores
}

func (r *memBookingRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.OwnerID() != ownerID {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return b, nil
}

func (r *memBookingRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, filter booking.ListFilter) ([]*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*booking.Booking
	for _, b := range r.s.bookings {
		if b.OwnerID() != ownerID {
			continue
		}
		if filter.Status != nil && b.Status() != *filter.Status {
			continue
		}
		if filter.PaymentStatus != nil && b.PaymentStatus() != *filter.PaymentStatus {
			continue
		}
		result = append(result, b)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, nil
}

func (r *memBookingRepo) FindByRoom(_ context.Context, ownerID, roomID uuid.UUID) ([]*booking.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*booking.Booking
	for _, b := range r.s.bookings {
		if b.OwnerID() == ownerID && b.RoomID() == roomID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *memBookingRepo) Save(_ context.Context, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookings[b.ID()] = b
	return nil
}

func (r *memBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID()]; !ok {
		return domain.NewNotFoundError("Booking", b.ID().String())
	}
	r.s.bookings[b.ID()] = b
	return nil
}

func (r *memBookingRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.OwnerID() != ownerID {
		return domain.NewNotFoundError("Booking", id.String())
	}
	delete(r.s.bookings, id)
	return nil
}

func (r *memBookingRepo) HasOverlapping(_ context.Context, guestID uuid.UUID, stay booking.Stay, excludeBookingID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.ID() == excludeBookingID || b.IsCancelled() {
			continue
		}
		if !containsID(b.GuestIDs(), guestID) {
			continue
		}
		if b.Stay().Overlaps(stay) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) CountReferencing(_ context.Context, guestID, excludeBookingID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, b := range r.s.bookings {
		if b.ID() == excludeBookingID {
			continue
		}
		if containsID(b.GuestIDs(), guestID) {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) RoomIDsOverlapping(_ context.Context, stay booking.Stay) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, b := range r.s.bookings {
		if b.IsCancelled() || !b.Stay().Overlaps(stay) {
			continue
		}
		if _, ok := seen[b.RoomID()]; !ok {
			seen[b.RoomID()] = struct{}{}
			ids = append(ids, b.RoomID())
		}
	}
	return ids, nil
}

func (r *memBookingRepo) RoomIDsWithUpcoming(_ context.Context, from time.Time) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, b := range r.s.bookings {
		if b.IsCancelled() || b.Stay().CheckOut().Before(from) {
			continue
		}
		if _, ok := seen[b.RoomID()]; !ok {
			seen[b.RoomID()] = struct{}{}
			ids = append(ids, b.RoomID())
		}
	}
	return ids, nil
}

// --- guests ---

type memGuestRepo struct {
	s *memStores
}

func (r *memGuestRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*guest.Guest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.guests[id]
	if !ok || g.OwnerID() != ownerID {
		return nil, domain.NewNotFoundError("Guest", id.String())
	}
	return g, nil
}

func (r *memGuestRepo) FindByIdentity(_ context.Context, ownerID uuid.UUID, identity guest.Identity) (*guest.Guest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.guests {
		if g.OwnerID() == ownerID && g.Identity().MatchesAny(identity) {
			return g, nil
		}
	}
	return nil, nil
}

func (r *memGuestRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*guest.Guest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*guest.Guest
	for _, id := range ids {
		if g, ok := r.s.guests[id]; ok {
			result = append(result, g)
		}
	}
	return result, nil
}

func (r *memGuestRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*guest.Guest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*guest.Guest
	for _, g := range r.s.guests {
		if g.OwnerID() == ownerID {
			result = append(result, g)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, nil
}

func (r *memGuestRepo) Save(_ context.Context, g *guest.Guest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.guests {
		if existing.OwnerID() == g.OwnerID() && existing.Identity().MatchesAny(g.Identity()) {
			return domain.NewConflictError(fmt.Sprintf("guest %s already exists", g.FullName()))
		}
	}
	r.s.guests[g.ID()] = g
	return nil
}

func (r *memGuestRepo) Update(_ context.Context, g *guest.Guest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.guests[g.ID()]; !ok {
		return domain.NewNotFoundError("Guest", g.ID().String())
	}
	r.s.guests[g.ID()] = g
	return nil
}

func (r *memGuestRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.guests[id]
	if !ok || g.OwnerID() != ownerID {
		return domain.NewNotFoundError("Guest", id.String())
	}
	delete(r.s.guests, id)
	return nil
}

// --- rooms ---

type memRoomRepo struct {
	s *memStores
}

func (r *memRoomRepo) FindByID(_ context.Context, ownerID, id uuid.UUID) (*room.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rm, ok := r.s.rooms[id]
	if !ok || rm.OwnerID() != ownerID {
		return nil, domain.NewNotFoundError("Room", id.String())
	}
	return rm, nil
}

func (r *memRoomRepo) FindByRoomNo(_ context.Context, ownerID uuid.UUID, roomNo int) (*room.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rm := range r.s.rooms {
		if rm.OwnerID() == ownerID && rm.RoomNo() == roomNo {
			return rm, nil
		}
	}
	return nil, nil
}

func (r *memRoomRepo) FindByOwner(_ context.Context, ownerID uuid.UUID, filter room.ListFilter) ([]*room.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*room.Room
	for _, rm := range r.s.rooms {
		if rm.OwnerID() != ownerID {
			continue
		}
		if filter.Status != nil && rm.Status() != *filter.Status {
			continue
		}
		if filter.RoomType != nil && rm.RoomType() != *filter.RoomType {
			continue
		}
		result = append(result, rm)
	}
	sortByRoomNo(result)
	return result, nil
}

func (r *memRoomRepo) FindByIDs(_ context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]*room.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*room.Room
	for _, id := range ids {
		if rm, ok := r.s.rooms[id]; ok && rm.OwnerID() == ownerID {
			result = append(result, rm)
		}
	}
	sortByRoomNo(result)
	return result, nil
}

func (r *memRoomRepo) FindAvailableExcluding(_ context.Context, ownerID uuid.UUID, excludeIDs []uuid.UUID) ([]*room.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []*room.Room
	for _, rm := range r.s.rooms {
		if rm.OwnerID() != ownerID || rm.Status() != room.StatusAvailable {
			continue
		}
		if containsID(excludeIDs, rm.ID()) {
			continue
		}
		result = append(result, rm)
	}
	sortByRoomNo(result)
	return result, nil
}

func (r *memRoomRepo) MaxRoomNo(_ context.Context, ownerID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	max := 0
	for _, rm := range r.s.rooms {
		if rm.OwnerID() == ownerID && rm.RoomNo() > max {
			max = rm.RoomNo()
		}
	}
	return max, nil
}

func (r *memRoomRepo) Save(_ context.Context, rm *room.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rooms {
		if existing.OwnerID() == rm.OwnerID() && existing.RoomNo() == rm.RoomNo() {
			return domain.NewConflictError(fmt.Sprintf("room number %d already exists", rm.RoomNo()))
		}
	}
	r.s.rooms[rm.ID()] = rm
	return nil
}

func (r *memRoomRepo) Update(_ context.Context, rm *room.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.rooms[rm.ID()]; !ok {
		return domain.NewNotFoundError("Room", rm.ID().String())
	}
	r.s.rooms[rm.ID()] = rm
	return nil
}

func (r *memRoomRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rm, ok := r.s.rooms[id]
	if !ok || rm.OwnerID() != ownerID {
		return domain.NewNotFoundError("Room", id.String())
	}
	delete(r.s.rooms, id)
	return nil
}

// --- doubles for the outbound ports ---

// recordingPublisher captures event types in call order.
type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) BookingCreated(context.Context, *booking.Booking) {
	p.events = append(p.events, "created")
}

func (p *recordingPublisher) BookingUpdated(context.Context, *booking.Booking) {
	p.events = append(p.events, "updated")
}

func (p *recordingPublisher) BookingCancelled(context.Context, *booking.Booking) {
	p.events = append(p.events, "cancelled")
}

func (p *recordingPublisher) BookingDeleted(context.Context, uuid.UUID, uuid.UUID) {
	p.events = append(p.events, "deleted")
}

// recordingNotifier captures confirmation mails.
type recordingNotifier struct {
	sent []application.BookingConfirmation
	err  error
}

func (n *recordingNotifier) SendBookingConfirmation(_ context.Context, c application.BookingConfirmation) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, c)
	return nil
}

// --- helpers ---

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func sortByRoomNo(rooms []*room.Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].RoomNo() < rooms[j].RoomNo()
	})
}
