//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotel-redisons/service-hotel/internal/application"
	"github.com/hotel-redisons/service-hotel/internal/domain"
	"github.com/hotel-redisons/service-hotel/internal/events"
)

// TestBookingLifecycle_EndToEnd drives a booking through creation, guest
// reuse, overlap rejection and deletion against real PostgreSQL and Kafka.
func TestBookingLifecycle_EndToEnd(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupHotelStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	ownerID := uuid.New()
	room1 := seedRoom(t, stack, ownerID, 0)
	room2 := seedRoom(t, stack, ownerID, 0)
	require.Equal(t, 101, room1.RoomNo)
	require.Equal(t, 102, room2.RoomNo)

	checkIn := time.Date(2026, time.November, 10, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.AddDate(0, 0, 5)

	created, err := stack.Bookings.Create(ctx, ownerID, application.CreateBookingInput{
		RoomID:      room1.ID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: 1000,
		PaidAmount:  1000,
		Guests: []application.GuestInput{
			guestInput("Ayesha Malik", "5001", true),
			guestInput("Omar Malik", "5002", false),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", created.Status)
	assert.Equal(t, "Paid", created.PaymentStatus)
	require.Len(t, created.Guests, 2)

	// The primary flag survives the round trip through the join table.
	reloaded, err := stack.Bookings.Get(ctx, ownerID, created.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Guests, 2)
	assert.True(t, reloaded.Guests[0].IsPrimaryGuest)
	assert.False(t, reloaded.Guests[1].IsPrimaryGuest)

	// The creation event lands on the booking topic.
	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.EventBookingCreated, 15*time.Second)
	var payload events.BookingEventPayload
	require.NoError(t, ce.ParseData(&payload))
	assert.Equal(t, created.ID, payload.BookingID)
	assert.Equal(t, room1.ID, payload.RoomID)

	// Same guest, overlapping stay in another room: rejected by the SQL
	// overlap query.
	_, err = stack.Bookings.Create(ctx, ownerID, application.CreateBookingInput{
		RoomID:      room2.ID,
		CheckIn:     checkIn.AddDate(0, 0, 2),
		CheckOut:    checkOut.AddDate(0, 0, 2),
		TotalAmount: 500,
		Guests:      []application.GuestInput{guestInput("Ayesha Malik", "5001", true)},
	})
	assert.True(t, domain.IsConflict(err))

	// Back-to-back reuses the existing guest record instead of creating one.
	second, err := stack.Bookings.Create(ctx, ownerID, application.CreateBookingInput{
		RoomID:      room2.ID,
		CheckIn:     checkOut,
		CheckOut:    checkOut.AddDate(0, 0, 2),
		TotalAmount: 400,
		Guests:      []application.GuestInput{guestInput("Ayesha Malik", "5001", true)},
	})
	require.NoError(t, err)
	assert.Equal(t, created.Guests[0].ID, second.Guests[0].ID)

	// Availability for the first window shows only room2; the second booking
	// starts at the first one's checkout and does not block it.
	available, err := stack.Rooms.SearchAvailable(ctx, ownerID, checkIn, checkOut)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, room2.ID, available[0].ID)

	// Deleting the first booking drops Omar (his only booking) and keeps
	// Ayesha, who still holds the second one.
	require.NoError(t, stack.Bookings.Delete(ctx, ownerID, created.ID))

	guests, err := stack.Guests.List(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Ayesha Malik", guests[0].FullName)

	consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.EventBookingDeleted, 15*time.Second)
}

// TestReports_Aggregates checks the SQL report queries against seeded data.
func TestReports_Aggregates(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupHotelStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ctx := context.Background()
	ownerID := uuid.New()
	rm := seedRoom(t, stack, ownerID, 0)

	checkIn := time.Now().UTC().AddDate(0, 0, 3)
	paidBooking, err := stack.Bookings.Create(ctx, ownerID, application.CreateBookingInput{
		RoomID:      rm.ID,
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, 2),
		TotalAmount: 600,
		PaidAmount:  600,
		Guests:      []application.GuestInput{guestInput("Ayesha Malik", "5001", true)},
	})
	require.NoError(t, err)

	_, err = stack.Bookings.Create(ctx, ownerID, application.CreateBookingInput{
		RoomID:      rm.ID,
		CheckIn:     checkIn.AddDate(0, 0, 10),
		CheckOut:    checkIn.AddDate(0, 0, 12),
		TotalAmount: 500,
		PaidAmount:  100,
		Guests:      []application.GuestInput{guestInput("Omar Malik", "5002", true)},
	})
	require.NoError(t, err)

	summary, err := stack.Reports.Summary(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalRooms)
	assert.Equal(t, int64(2), summary.TotalGuests)
	assert.Equal(t, int64(2), summary.TotalBookings)
	assert.Equal(t, int64(2), summary.ActiveBookings)
	assert.Equal(t, 700.0, summary.TotalRevenue)
	assert.Equal(t, 400.0, summary.PendingRevenue)

	weekly, err := stack.Reports.Weekly(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, weekly, 7)
	var totalBookings int64
	for _, day := range weekly {
		totalBookings += day.Bookings
	}
	assert.Equal(t, int64(2), totalBookings, "both bookings were created today")

	byType, err := stack.Reports.RevenueByRoomType(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Deluxe", byType[0].RoomType)
	assert.Equal(t, 700.0, byType[0].Revenue)

	trend, err := stack.Reports.Trend(ctx, ownerID, 3)
	require.NoError(t, err)
	require.Len(t, trend, 3)
	assert.Equal(t, int64(2), trend[2].Bookings)

	// Cancelling removes the paid booking from the revenue figures.
	cancelled := "Cancelled"
	_, err = stack.Bookings.Update(ctx, ownerID, paidBooking.ID, application.UpdateBookingInput{Status: &cancelled})
	require.NoError(t, err)

	summary, err = stack.Reports.Summary(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalBookings)
	assert.Equal(t, int64(1), summary.ActiveBookings)
	assert.Equal(t, 100.0, summary.TotalRevenue)
}
