package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
	"github.com/hotel-redisons/service-hotel/internal/domain/guest"
	"github.com/hotel-redisons/service-hotel/internal/domain/room"
)

// Store implements application.Stores on a GORM connection. InTx opens a
// serializable transaction and hands out a Store bound to it, so the overlap
// check and the booking insert see one consistent snapshot.
type Store struct {
	db       *gorm.DB
	bookings *GormBookingRepository
	guests   *GormGuestRepository
	rooms    *GormRoomRepository
}

// NewStore creates a Store over the given connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		bookings: NewGormBookingRepository(db),
		guests:   NewGormGuestRepository(db),
		rooms:    NewGormRoomRepository(db),
	}
}

// Bookings returns the booking repository bound to this store's connection.
func (s *Store) Bookings() booking.Repository { return s.bookings }

// Guests returns the guest repository bound to this store's connection.
func (s *Store) Guests() guest.Repository { return s.guests }

// Rooms returns the room repository bound to this store's connection.
func (s *Store) Rooms() room.Repository { return s.rooms }

// InTx runs fn in a serializable transaction. The serializable level makes
// concurrent check-then-insert races abort instead of double-committing.
func (s *Store) InTx(ctx context.Context, fn func(application.Stores) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
