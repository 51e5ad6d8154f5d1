package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
)

// EventPublisher fans booking lifecycle events out to the message bus.
// Publishing is fire-and-forget: implementations log failures instead of
// returning them, so a broker outage never fails the request.
type EventPublisher interface {
	BookingCreated(ctx context.Context, b *booking.Booking)
	BookingUpdated(ctx context.Context, b *booking.Booking)
	BookingCancelled(ctx context.Context, b *booking.Booking)
	BookingDeleted(ctx context.Context, ownerID, bookingID uuid.UUID)
}

// BookingConfirmation carries what the confirmation mail needs.
type BookingConfirmation struct {
	GuestName   string
	GuestEmail  string
	RoomName    string
	RoomNo      int
	CheckIn     time.Time
	CheckOut    time.Time
	TotalAmount float64
}

// Notifier delivers guest-facing notifications. Delivery is best-effort; the
// booking flow logs and continues on failure.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, c BookingConfirmation) error
}

// ReportSummary is the owner-wide headline view.
type ReportSummary struct {
	TotalRooms     int64   `json:"totalRooms"`
	TotalGuests    int64   `json:"totalGuests"`
	TotalBookings  int64   `json:"totalBookings"`
	ActiveBookings int64   `json:"activeBookings"`
	TotalRevenue   float64 `json:"totalRevenue"`
	MonthRevenue   float64 `json:"monthRevenue"`
	PendingRevenue float64 `json:"pendingRevenue"`
}

// DailyRevenue is one day's booking count and paid revenue.
type DailyRevenue struct {
	Date     time.Time `json:"date"`
	Bookings int64     `json:"bookings"`
	Revenue  float64   `json:"revenue"`
}

// RoomTypeRevenue aggregates bookings and paid revenue per room type.
type RoomTypeRevenue struct {
	RoomType string  `json:"roomType"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// TrendPoint is one month's booking count and paid revenue.
type TrendPoint struct {
	Month    string  `json:"month"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// ReportStore answers the aggregate queries behind the reporting endpoints.
// Cancelled bookings are excluded from every revenue figure.
type ReportStore interface {
	Summary(ctx context.Context, ownerID uuid.UUID) (*ReportSummary, error)
	RevenueByDay(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]DailyRevenue, error)
	RevenueByRoomType(ctx context.Context, ownerID uuid.UUID) ([]RoomTypeRevenue, error)
	MonthlyTrend(ctx context.Context, ownerID uuid.UUID, months int) ([]TrendPoint, error)
}
