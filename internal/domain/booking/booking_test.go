package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

func newTestBooking(t *testing.T, total, paid float64) *Booking {
	t.Helper()
	guestID := uuid.New()
	b, err := NewBooking(uuid.New(), uuid.New(), mustStay(t, day(10), day(12)), total, paid, []uuid.UUID{guestID}, guestID)
	require.NoError(t, err)
	return b
}

func TestNewBooking_Validation(t *testing.T) {
	owner, room := uuid.New(), uuid.New()
	stay := mustStay(t, day(10), day(12))
	guests := []uuid.UUID{uuid.New()}

	_, err := NewBooking(uuid.Nil, room, stay, 100, 0, guests, uuid.Nil)
	assert.True(t, domain.IsValidation(err))

	_, err = NewBooking(owner, uuid.Nil, stay, 100, 0, guests, uuid.Nil)
	assert.True(t, domain.IsValidation(err))

	_, err = NewBooking(owner, room, Stay{}, 100, 0, guests, uuid.Nil)
	assert.True(t, domain.IsValidation(err))

	_, err = NewBooking(owner, room, stay, -1, 0, guests, uuid.Nil)
	assert.True(t, domain.IsValidation(err))

	_, err = NewBooking(owner, room, stay, 100, -1, guests, uuid.Nil)
	assert.True(t, domain.IsValidation(err))

	_, err = NewBooking(owner, room, stay, 100, 0, nil, uuid.Nil)
	assert.True(t, domain.IsValidation(err))

	dup := uuid.New()
	_, err = NewBooking(owner, room, stay, 100, 0, []uuid.UUID{dup, dup}, uuid.Nil)
	assert.True(t, domain.IsValidation(err))

	// The primary guest must be on the booking.
	_, err = NewBooking(owner, room, stay, 100, 0, guests, uuid.New())
	assert.True(t, domain.IsValidation(err))

	b, err := NewBooking(owner, room, stay, 100, 0, guests, guests[0])
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status())
	assert.Equal(t, PaymentPending, b.PaymentStatus())
	assert.Equal(t, guests[0], b.PrimaryGuestID())

	// No flagged primary is allowed.
	b, err = NewBooking(owner, room, stay, 100, 0, guests, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, b.PrimaryGuestID())
}

func TestBooking_SetAmountsRederivesPayment(t *testing.T) {
	b := newTestBooking(t, 500, 0)
	assert.Equal(t, PaymentPending, b.PaymentStatus())

	require.NoError(t, b.SetAmounts(500, 500))
	assert.Equal(t, PaymentPaid, b.PaymentStatus())

	require.NoError(t, b.SetAmounts(500, 100))
	assert.Equal(t, PaymentPending, b.PaymentStatus())
}

func TestBooking_ChangeStatus(t *testing.T) {
	b := newTestBooking(t, 100, 100)

	require.NoError(t, b.ChangeStatus(StatusCheckedIn))
	assert.Equal(t, StatusCheckedIn, b.Status())

	// Same-status change is a no-op, not an error.
	require.NoError(t, b.ChangeStatus(StatusCheckedIn))

	err := b.ChangeStatus(StatusPending)
	assert.True(t, domain.IsConflict(err))

	require.NoError(t, b.ChangeStatus(StatusCheckedOut))
	assert.Equal(t, StatusCheckedOut, b.Status())
}

func TestBooking_CancelForcesPaymentCancelled(t *testing.T) {
	b := newTestBooking(t, 100, 100)
	assert.Equal(t, PaymentPaid, b.PaymentStatus())

	require.NoError(t, b.ChangeStatus(StatusCancelled))
	assert.Equal(t, StatusCancelled, b.Status())
	assert.Equal(t, PaymentCancelled, b.PaymentStatus())

	// Cancelling again is idempotent.
	b.Cancel()
	assert.Equal(t, StatusCancelled, b.Status())

	// No forward transitions out of Cancelled.
	err := b.ChangeStatus(StatusCheckedIn)
	assert.True(t, domain.IsConflict(err))
}

func TestBooking_AmountsDoNotResurrectCancelledPayment(t *testing.T) {
	b := newTestBooking(t, 100, 0)
	b.Cancel()

	require.NoError(t, b.SetAmounts(100, 100))
	assert.Equal(t, PaymentCancelled, b.PaymentStatus())
}

func TestBooking_SetGuests(t *testing.T) {
	b := newTestBooking(t, 100, 0)

	g1, g2 := uuid.New(), uuid.New()
	require.NoError(t, b.SetGuests([]uuid.UUID{g1, g2}, g2))
	assert.Equal(t, []uuid.UUID{g1, g2}, b.GuestIDs())
	assert.Equal(t, g2, b.PrimaryGuestID())

	err := b.SetGuests(nil, uuid.Nil)
	assert.True(t, domain.IsValidation(err))
	err = b.SetGuests([]uuid.UUID{g1, g1}, g1)
	assert.True(t, domain.IsValidation(err))
	err = b.SetGuests([]uuid.UUID{g1}, g2)
	assert.True(t, domain.IsValidation(err), "primary must stay on the guest list")

	// Failed replacement leaves the list and the primary untouched.
	assert.Equal(t, []uuid.UUID{g1, g2}, b.GuestIDs())
	assert.Equal(t, g2, b.PrimaryGuestID())
}
