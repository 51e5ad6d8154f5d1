package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hotel-redisons/service-hotel/internal/domain/booking"
	"github.com/hotel-redisons/service-hotel/internal/kafka"
)

// TopicBookingEvents carries every booking lifecycle event.
const TopicBookingEvents = "hotel.booking.events"

const eventSource = "service-hotel"

// Event types on the booking topic.
const (
	EventBookingCreated   = "hotel.booking.created"
	EventBookingUpdated   = "hotel.booking.updated"
	EventBookingCancelled = "hotel.booking.cancelled"
	EventBookingDeleted   = "hotel.booking.deleted"
)

// BookingEventPayload is the data section of booking lifecycle events.
type BookingEventPayload struct {
	BookingID      uuid.UUID   `json:"bookingId"`
	OwnerID        uuid.UUID   `json:"ownerId"`
	RoomID         uuid.UUID   `json:"roomId"`
	CheckIn        time.Time   `json:"checkIn"`
	CheckOut       time.Time   `json:"checkOut"`
	TotalAmount    float64     `json:"totalAmount"`
	PaidAmount     float64     `json:"paidAmount"`
	PaymentStatus  string      `json:"paymentStatus"`
	Status         string      `json:"status"`
	GuestIDs       []uuid.UUID `json:"guestIds"`
	PrimaryGuestID uuid.UUID   `json:"primaryGuestId"`
}

// BookingDeletedPayload is the data section of deletion events; the booking
// row is gone by the time the event goes out.
type BookingDeletedPayload struct {
	BookingID uuid.UUID `json:"bookingId"`
	OwnerID   uuid.UUID `json:"ownerId"`
}

// Publisher pushes booking lifecycle events onto the bus. Failures are
// logged and swallowed so the request path never blocks on the broker.
type Publisher struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewPublisher creates a new Publisher.
func NewPublisher(producer *kafka.Producer, logger *zap.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

// BookingCreated publishes a creation event.
func (p *Publisher) BookingCreated(ctx context.Context, b *booking.Booking) {
	p.publish(ctx, EventBookingCreated, payloadFor(b))
}

// BookingUpdated publishes an update event.
func (p *Publisher) BookingUpdated(ctx context.Context, b *booking.Booking) {
	p.publish(ctx, EventBookingUpdated, payloadFor(b))
}

// BookingCancelled publishes a cancellation event.
func (p *Publisher) BookingCancelled(ctx context.Context, b *booking.Booking) {
	p.publish(ctx, EventBookingCancelled, payloadFor(b))
}

// BookingDeleted publishes a deletion event.
func (p *Publisher) BookingDeleted(ctx context.Context, ownerID, bookingID uuid.UUID) {
	p.publish(ctx, EventBookingDeleted, BookingDeletedPayload{BookingID: bookingID, OwnerID: ownerID})
}

func (p *Publisher) publish(ctx context.Context, eventType string, payload interface{}) {
	event, err := kafka.NewCloudEvent(eventSource, eventType, payload)
	if err != nil {
		p.logger.Error("failed to build event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := p.producer.PublishEvent(ctx, TopicBookingEvents, event); err != nil {
		p.logger.Error("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

func payloadFor(b *booking.Booking) BookingEventPayload {
	return BookingEventPayload{
		BookingID:      b.ID(),
		OwnerID:        b.OwnerID(),
		RoomID:         b.RoomID(),
		CheckIn:        b.Stay().CheckIn(),
		CheckOut:       b.Stay().CheckOut(),
		TotalAmount:    b.TotalAmount(),
		PaidAmount:     b.PaidAmount(),
		PaymentStatus:  string(b.PaymentStatus()),
		Status:         string(b.Status()),
		GuestIDs:       b.GuestIDs(),
		PrimaryGuestID: b.PrimaryGuestID(),
	}
}
