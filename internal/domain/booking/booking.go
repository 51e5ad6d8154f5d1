package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

// Booking is the aggregate root for a room reservation. The guest list is
// ordered and holds at least one distinct guest; at most one of them is the
// primary contact, and that choice belongs to this booking alone. Payment
// status is derived from the amounts unless the booking is cancelled.
type Booking struct {
	id             uuid.UUID
	ownerID        uuid.UUID
	roomID         uuid.UUID
	stay           Stay
	totalAmount    float64
	paidAmount     float64
	paymentStatus  PaymentStatus
	status         Status
	guestIDs       []uuid.UUID
	primaryGuestID uuid.UUID

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status=Pending and a derived
// payment status. primaryGuestID may be uuid.Nil when no guest was flagged;
// otherwise it must appear in guestIDs.
func NewBooking(
	ownerID uuid.UUID,
	roomID uuid.UUID,
	stay Stay,
	totalAmount float64,
	paidAmount float64,
	guestIDs []uuid.UUID,
	primaryGuestID uuid.UUID,
) (*Booking, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room is required")
	}
	if stay.IsZero() {
		return nil, domain.NewValidationError("check-in and check-out dates are required")
	}
	if totalAmount < 0 {
		return nil, domain.NewValidationError("total amount must not be negative")
	}
	if paidAmount < 0 {
		return nil, domain.NewValidationError("paid amount must not be negative")
	}
	if err := validateGuestList(guestIDs, primaryGuestID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:             uuid.New(),
		ownerID:        ownerID,
		roomID:         roomID,
		stay:           stay,
		totalAmount:    totalAmount,
		paidAmount:     paidAmount,
		paymentStatus:  DerivePaymentStatus(paidAmount, totalAmount),
		status:         StatusPending,
		guestIDs:       append([]uuid.UUID(nil), guestIDs...),
		primaryGuestID: primaryGuestID,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, ownerID, roomID uuid.UUID,
	stay Stay,
	totalAmount, paidAmount float64,
	paymentStatus PaymentStatus,
	status Status,
	guestIDs []uuid.UUID,
	primaryGuestID uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:             id,
		ownerID:        ownerID,
		roomID:         roomID,
		stay:           stay,
		totalAmount:    totalAmount,
		paidAmount:     paidAmount,
		paymentStatus:  paymentStatus,
		status:         status,
		guestIDs:       guestIDs,
		primaryGuestID: primaryGuestID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func validateGuestList(guestIDs []uuid.UUID, primaryGuestID uuid.UUID) error {
	if len(guestIDs) == 0 {
		return domain.NewValidationError("at least one guest is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(guestIDs))
	for _, id := range guestIDs {
		if id == uuid.Nil {
			return domain.NewValidationError("guest ID must not be empty")
		}
		if _, dup := seen[id]; dup {
			return domain.NewValidationError("guest IDs must be unique")
		}
		seen[id] = struct{}{}
	}
	if primaryGuestID != uuid.Nil {
		if _, ok := seen[primaryGuestID]; !ok {
			return domain.NewValidationError("primary guest must be on the booking")
		}
	}
	return nil
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// OwnerID returns the account this booking is scoped to.
func (b *Booking) OwnerID() uuid.UUID { return b.ownerID }

// RoomID returns the booked room.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// Stay returns the booked date range.
func (b *Booking) Stay() Stay { return b.stay }

// TotalAmount returns the amount owed for the stay.
func (b *Booking) TotalAmount() float64 { return b.totalAmount }

// PaidAmount returns the amount settled so far.
func (b *Booking) PaidAmount() float64 { return b.paidAmount }

// PaymentStatus returns the derived payment status.
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }

// Status returns the booking lifecycle status.
func (b *Booking) Status() Status { return b.status }

// GuestIDs returns the ordered guest list.
func (b *Booking) GuestIDs() []uuid.UUID { return append([]uuid.UUID(nil), b.guestIDs...) }

// PrimaryGuestID returns the primary contact on this booking, or uuid.Nil
// when none was flagged.
func (b *Booking) PrimaryGuestID() uuid.UUID { return b.primaryGuestID }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsCancelled reports whether the booking has been cancelled.
func (b *Booking) IsCancelled() bool { return b.status == StatusCancelled }

// --- Behavior ---

// SetStay replaces the booked date range.
func (b *Booking) SetStay(stay Stay) {
	b.stay = stay
	b.touch()
}

// SetRoom moves the booking to a different room.
func (b *Booking) SetRoom(roomID uuid.UUID) error {
	if roomID == uuid.Nil {
		return domain.NewValidationError("room is required")
	}
	b.roomID = roomID
	b.touch()
	return nil
}

// SetAmounts updates the amounts and rederives the payment status unless the
// booking is cancelled.
func (b *Booking) SetAmounts(totalAmount, paidAmount float64) error {
	if totalAmount < 0 {
		return domain.NewValidationError("total amount must not be negative")
	}
	if paidAmount < 0 {
		return domain.NewValidationError("paid amount must not be negative")
	}
	b.totalAmount = totalAmount
	b.paidAmount = paidAmount
	b.rederivePayment()
	b.touch()
	return nil
}

// SetGuests replaces the ordered guest list and the primary contact.
func (b *Booking) SetGuests(guestIDs []uuid.UUID, primaryGuestID uuid.UUID) error {
	if err := validateGuestList(guestIDs, primaryGuestID); err != nil {
		return err
	}
	b.guestIDs = append([]uuid.UUID(nil), guestIDs...)
	b.primaryGuestID = primaryGuestID
	b.touch()
	return nil
}

// ChangeStatus moves the booking along the lifecycle state machine.
// Moving to Cancelled forces the payment status to Cancelled as well.
func (b *Booking) ChangeStatus(target Status) error {
	if target == b.status {
		return nil
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	if target == StatusCancelled {
		b.Cancel()
		return nil
	}
	b.status = target
	b.rederivePayment()
	b.touch()
	return nil
}

// Cancel marks the booking and its payment status Cancelled. Cancelling an
// already-cancelled booking is a no-op.
func (b *Booking) Cancel() {
	if b.status == StatusCancelled {
		return
	}
	b.status = StatusCancelled
	b.paymentStatus = PaymentCancelled
	b.touch()
}

func (b *Booking) rederivePayment() {
	if b.status == StatusCancelled {
		b.paymentStatus = PaymentCancelled
		return
	}
	b.paymentStatus = DerivePaymentStatus(b.paidAmount, b.totalAmount)
}

func (b *Booking) touch() {
	b.updatedAt = time.Now().UTC()
}
