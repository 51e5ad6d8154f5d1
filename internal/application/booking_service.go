package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hotel-redisons/service-hotel/internal/domain"
	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
	"github.com/hotel-redisons/service-hotel/internal/domain/guest"
	"github.com/hotel-redisons/service-hotel/internal/domain/room"
)

// BookingService drives the booking lifecycle: creation with guest
// resolution and double-booking prevention, partial updates, the status
// state machine and deletion with guest-orphan cleanup.
type BookingService struct {
	stores   Stores
	resolver *GuestResolver
	events   EventPublisher
	notifier Notifier
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(stores Stores, resolver *GuestResolver, events EventPublisher, notifier Notifier, logger *zap.Logger) *BookingService {
	return &BookingService{
		stores:   stores,
		resolver: resolver,
		events:   events,
		notifier: notifier,
		logger:   logger,
	}
}

// Create books a room for a guest list. Guests are resolved against the
// owner's pool, the stay is checked against each guest's other bookings and
// the insert happens in the same serializable transaction as the check.
func (s *BookingService) Create(ctx context.Context, ownerID uuid.UUID, in CreateBookingInput) (*BookingDTO, error) {
	stay, err := booking.NewStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	var (
		created   *booking.Booking
		guests    []*guest.Guest
		primaryID uuid.UUID
		rm        *room.Room
	)
	err = s.stores.InTx(ctx, func(tx Stores) error {
		rm, err = tx.Rooms().FindByID(ctx, ownerID, in.RoomID)
		if err != nil {
			return err
		}
		guests, primaryID, err = s.resolver.Resolve(ctx, tx.Guests(), ownerID, in.Guests)
		if err != nil {
			return err
		}
		if err := s.resolver.EnsureNoOverlaps(ctx, tx.Bookings(), guests, stay, uuid.Nil); err != nil {
			return err
		}

		created, err = booking.NewBooking(ownerID, rm.ID(), stay, in.TotalAmount, in.PaidAmount, guestIDsOf(guests), primaryID)
		if err != nil {
			return err
		}
		return tx.Bookings().Save(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.events.BookingCreated(ctx, created)
	s.sendConfirmation(ctx, created, guests, rm)

	dto := ToBookingDTO(created, guests)
	return &dto, nil
}

// List retrieves the owner's bookings, newest first, optionally filtered by
// status and payment status. No matches is an empty list, not an error.
func (s *BookingService) List(ctx context.Context, ownerID uuid.UUID, in ListBookingsInput) ([]BookingDTO, error) {
	filter, err := parseListFilter(in)
	if err != nil {
		return nil, err
	}

	bookings, err := s.stores.Bookings().FindByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return s.toDTOs(ctx, bookings)
}

// Get retrieves one booking with its guest list expanded.
func (s *BookingService) Get(ctx context.Context, ownerID, id uuid.UUID) (*BookingDTO, error) {
	b, err := s.stores.Bookings().FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	guests, err := s.stores.Guests().FindByIDs(ctx, b.GuestIDs())
	if err != nil {
		return nil, err
	}
	dto := ToBookingDTO(b, guests)
	return &dto, nil
}

// Update applies a partial update. Stay or guest-list changes re-run the
// overlap check, excluding the booking itself. Status moves through the
// lifecycle state machine; payment status is derived from the amounts and
// only "Cancelled" is accepted directly, which cancels the whole booking.
func (s *BookingService) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateBookingInput) (*BookingDTO, error) {
	var (
		updated      *booking.Booking
		guests       []*guest.Guest
		wasCancelled bool
	)
	err := s.stores.InTx(ctx, func(tx Stores) error {
		b, err := tx.Bookings().FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		wasCancelled = b.IsCancelled()

		if in.RoomID != nil {
			if _, err := tx.Rooms().FindByID(ctx, ownerID, *in.RoomID); err != nil {
				return err
			}
			if err := b.SetRoom(*in.RoomID); err != nil {
				return err
			}
		}

		stayChanged := in.CheckIn != nil || in.CheckOut != nil
		if stayChanged {
			checkIn, checkOut := b.Stay().CheckIn(), b.Stay().CheckOut()
			if in.CheckIn != nil {
				checkIn = *in.CheckIn
			}
			if in.CheckOut != nil {
				checkOut = *in.CheckOut
			}
			stay, err := booking.NewStay(checkIn, checkOut)
			if err != nil {
				return err
			}
			b.SetStay(stay)
		}

		if in.TotalAmount != nil || in.PaidAmount != nil {
			total, paid := b.TotalAmount(), b.PaidAmount()
			if in.TotalAmount != nil {
				total = *in.TotalAmount
			}
			if in.PaidAmount != nil {
				paid = *in.PaidAmount
			}
			if err := b.SetAmounts(total, paid); err != nil {
				return err
			}
		}

		guestsChanged := in.Guests != nil
		if guestsChanged {
			var primaryID uuid.UUID
			guests, primaryID, err = s.resolver.ResolveUpdate(ctx, tx.Guests(), ownerID, in.Guests)
			if err != nil {
				return err
			}
			if err := b.SetGuests(guestIDsOf(guests), primaryID); err != nil {
				return err
			}
		} else {
			guests, err = tx.Guests().FindByIDs(ctx, b.GuestIDs())
			if err != nil {
				return err
			}
		}

		if stayChanged || guestsChanged {
			if err := s.resolver.EnsureNoOverlaps(ctx, tx.Bookings(), guests, b.Stay(), b.ID()); err != nil {
				return err
			}
		}

		if in.Status != nil {
			target, err := booking.ParseStatus(*in.Status)
			if err != nil {
				return err
			}
			if err := b.ChangeStatus(target); err != nil {
				return err
			}
		}
		if in.PaymentStatus != nil {
			target, err := booking.ParsePaymentStatus(*in.PaymentStatus)
			if err != nil {
				return err
			}
			// Paid/Pending are derived from the amounts; only an explicit
			// cancellation is honored, and it cancels the booking with it.
			if target == booking.PaymentCancelled {
				b.Cancel()
			}
		}

		updated = b
		return tx.Bookings().Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	if updated.IsCancelled() && !wasCancelled {
		s.events.BookingCancelled(ctx, updated)
	} else {
		s.events.BookingUpdated(ctx, updated)
	}

	dto := ToBookingDTO(updated, guests)
	return &dto, nil
}

// Delete removes the booking and deletes any of its guests left with no
// other booking.
func (s *BookingService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := s.stores.InTx(ctx, func(tx Stores) error {
		b, err := tx.Bookings().FindByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		return deleteBookingCascade(ctx, tx, b)
	})
	if err != nil {
		return err
	}

	s.events.BookingDeleted(ctx, ownerID, id)
	return nil
}

// deleteBookingCascade removes the booking and, per guest, deletes the guest
// record when this was their only remaining booking. Shared with room
// deletion, which cascades through every booking on the room.
func deleteBookingCascade(ctx context.Context, tx Stores, b *booking.Booking) error {
	for _, guestID := range b.GuestIDs() {
		remaining, err := tx.Bookings().CountReferencing(ctx, guestID, b.ID())
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Guests().Delete(ctx, b.OwnerID(), guestID); err != nil && !domain.IsNotFound(err) {
				return err
			}
		}
	}
	return tx.Bookings().Delete(ctx, b.OwnerID(), b.ID())
}

func (s *BookingService) sendConfirmation(ctx context.Context, b *booking.Booking, guests []*guest.Guest, rm *room.Room) {
	primary := primaryGuest(b, guests)
	if primary == nil {
		return
	}
	err := s.notifier.SendBookingConfirmation(ctx, BookingConfirmation{
		GuestName:   primary.FullName(),
		GuestEmail:  primary.Identity().Email,
		RoomName:    rm.Name(),
		RoomNo:      rm.RoomNo(),
		CheckIn:     b.Stay().CheckIn(),
		CheckOut:    b.Stay().CheckOut(),
		TotalAmount: b.TotalAmount(),
	})
	if err != nil {
		s.logger.Warn("failed to send booking confirmation",
			zap.String("booking_id", b.ID().String()),
			zap.String("guest_email", primary.Identity().Email),
			zap.Error(err))
	}
}

func (s *BookingService) toDTOs(ctx context.Context, bookings []*booking.Booking) ([]BookingDTO, error) {
	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		guests, err := s.stores.Guests().FindByIDs(ctx, b.GuestIDs())
		if err != nil {
			return nil, err
		}
		dtos[i] = ToBookingDTO(b, guests)
	}
	return dtos, nil
}

// primaryGuest returns the booking's flagged primary guest, falling back to
// the first guest on the list.
func primaryGuest(b *booking.Booking, guests []*guest.Guest) *guest.Guest {
	for _, g := range guests {
		if g.ID() == b.PrimaryGuestID() {
			return g
		}
	}
	if len(guests) > 0 {
		return guests[0]
	}
	return nil
}

func guestIDsOf(guests []*guest.Guest) []uuid.UUID {
	ids := make([]uuid.UUID, len(guests))
	for i, g := range guests {
		ids[i] = g.ID()
	}
	return ids
}

func parseListFilter(in ListBookingsInput) (booking.ListFilter, error) {
	var filter booking.ListFilter
	if in.Status != "" {
		status, err := booking.ParseStatus(in.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if in.PaymentStatus != "" {
		paymentStatus, err := booking.ParsePaymentStatus(in.PaymentStatus)
		if err != nil {
			return filter, err
		}
		filter.PaymentStatus = &paymentStatus
	}
	return filter, nil
}
