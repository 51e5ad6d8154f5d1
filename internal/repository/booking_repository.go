package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel-redisons/service-hotel/internal/domain"
	bookingDomain "github.com/hotel-redisons/service-hotel/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RoomID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckIn       time.Time `gorm:"not null;index"`
	CheckOut      time.Time `gorm:"not null;index"`
	TotalAmount   float64   `gorm:"not null"`
	PaidAmount    float64   `gorm:"not null;default:0"`
	PaymentStatus string    `gorm:"not null;size:20;index"`
	Status        string    `gorm:"not null;size:20;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// BookingGuestModel is the join table linking a booking to its ordered guest
// list. IsPrimary marks the booking's primary contact; the flag lives here
// because it is scoped to one booking, not to the guest record.
type BookingGuestModel struct {
	BookingID uuid.UUID `gorm:"type:uuid;primaryKey"`
	GuestID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position  int       `gorm:"not null"`
	IsPrimary bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for the GORM model.
func (BookingGuestModel) TableName() string {
	return "booking_guests"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by ID within the owner's scope.
func (r *GormBookingRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}

	links, err := r.guestLinksFor(ctx, []uuid.UUID{model.ID})
	if err != nil {
		return nil, err
	}
	return toDomainBooking(&model, links[model.ID])
}

// FindByOwner retrieves the owner's bookings, newest-created first.
func (r *GormBookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter bookingDomain.ListFilter) ([]*bookingDomain.Booking, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", string(*filter.PaymentStatus))
	}

	var models []BookingModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	return r.toDomainBookings(ctx, models)
}

// FindByRoom retrieves the owner's bookings referencing the given room.
func (r *GormBookingRepository) FindByRoom(ctx context.Context, ownerID, roomID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND room_id = ?", ownerID, roomID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by room: %w", err)
	}
	return r.toDomainBookings(ctx, models)
}

// Save persists a new booking and its guest list.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	if err := r.replaceGuestLinks(ctx, b); err != nil {
		return err
	}
	return nil
}

// Update persists changes to an existing booking, replacing its guest list.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND owner_id = ?", model.ID, model.OwnerID).
		Updates(map[string]interface{}{
			"room_id":        model.RoomID,
			"check_in":       model.CheckIn,
			"check_out":      model.CheckOut,
			"total_amount":   model.TotalAmount,
			"paid_amount":    model.PaidAmount,
			"payment_status": model.PaymentStatus,
			"status":         model.Status,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", b.ID().String())
	}
	return r.replaceGuestLinks(ctx, b)
}

// Delete removes the booking and its guest links within the owner's scope.
func (r *GormBookingRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	if err := r.db.WithContext(ctx).Where("booking_id = ?", id).Delete(&BookingGuestModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete booking guest links: %w", err)
	}
	return nil
}

// HasOverlapping reports whether the guest has a non-cancelled booking
// overlapping the stay. The overlap test is half-open: check_in < newCheckOut
// AND check_out > newCheckIn, so back-to-back stays do not collide.
func (r *GormBookingRepository) HasOverlapping(ctx context.Context, guestID uuid.UUID, stay bookingDomain.Stay, excludeBookingID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Joins("JOIN booking_guests bg ON bg.booking_id = bookings.id").
		Where("bg.guest_id = ?", guestID).
		Where("bookings.status <> ?", string(bookingDomain.StatusCancelled)).
		Where("bookings.check_in < ? AND bookings.check_out > ?", stay.CheckOut(), stay.CheckIn())
	if excludeBookingID != uuid.Nil {
		query = query.Where("bookings.id <> ?", excludeBookingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// CountReferencing counts bookings still referencing the guest.
func (r *GormBookingRepository) CountReferencing(ctx context.Context, guestID, excludeBookingID uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&BookingGuestModel{}).
		Where("guest_id = ?", guestID)
	if excludeBookingID != uuid.Nil {
		query = query.Where("booking_id <> ?", excludeBookingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings referencing guest: %w", err)
	}
	return count, nil
}

// RoomIDsOverlapping returns IDs of rooms with any non-cancelled booking
// overlapping the stay.
func (r *GormBookingRepository) RoomIDsOverlapping(ctx context.Context, stay bookingDomain.Stay) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("status <> ?", string(bookingDomain.StatusCancelled)).
		Where("check_in < ? AND check_out > ?", stay.CheckOut(), stay.CheckIn()).
		Distinct("room_id").
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping room IDs: %w", err)
	}
	return ids, nil
}

// RoomIDsWithUpcoming returns IDs of rooms with any non-cancelled booking
// whose checkout is on or after the given instant.
func (r *GormBookingRepository) RoomIDsWithUpcoming(ctx context.Context, from time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("status <> ?", string(bookingDomain.StatusCancelled)).
		Where("check_out >= ?", from).
		Distinct("room_id").
		Pluck("room_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find booked room IDs: %w", err)
	}
	return ids, nil
}

// --- Internal helpers ---

func (r *GormBookingRepository) replaceGuestLinks(ctx context.Context, b *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Where("booking_id = ?", b.ID()).Delete(&BookingGuestModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear booking guest links: %w", err)
	}
	guestIDs := b.GuestIDs()
	links := make([]BookingGuestModel, len(guestIDs))
	for i, guestID := range guestIDs {
		links[i] = BookingGuestModel{
			BookingID: b.ID(),
			GuestID:   guestID,
			Position:  i,
			IsPrimary: guestID == b.PrimaryGuestID(),
		}
	}
	if err := r.db.WithContext(ctx).Create(&links).Error; err != nil {
		return fmt.Errorf("failed to save booking guest links: %w", err)
	}
	return nil
}

// bookingGuestLinks is one booking's ordered guest list plus its primary
// contact, as read back from the join table.
type bookingGuestLinks struct {
	guestIDs  []uuid.UUID
	primaryID uuid.UUID
}

func (r *GormBookingRepository) guestLinksFor(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID]bookingGuestLinks, error) {
	if len(bookingIDs) == 0 {
		return map[uuid.UUID]bookingGuestLinks{}, nil
	}
	var links []BookingGuestModel
	if err := r.db.WithContext(ctx).
		Where("booking_id IN ?", bookingIDs).
		Order("booking_id, position ASC").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load booking guest links: %w", err)
	}
	result := make(map[uuid.UUID]bookingGuestLinks, len(bookingIDs))
	for _, link := range links {
		entry := result[link.BookingID]
		entry.guestIDs = append(entry.guestIDs, link.GuestID)
		if link.IsPrimary {
			entry.primaryID = link.GuestID
		}
		result[link.BookingID] = entry
	}
	return result, nil
}

func (r *GormBookingRepository) toDomainBookings(ctx context.Context, models []BookingModel) ([]*bookingDomain.Booking, error) {
	ids := make([]uuid.UUID, len(models))
	for i := range models {
		ids[i] = models[i].ID
	}
	links, err := r.guestLinksFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		b, err := toDomainBooking(&models[i], links[models[i].ID])
		if err != nil {
			return nil, err
		}
		bookings[i] = b
	}
	return bookings, nil
}

// --- Conversion helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:            b.ID(),
		OwnerID:       b.OwnerID(),
		RoomID:        b.RoomID(),
		CheckIn:       b.Stay().CheckIn(),
		CheckOut:      b.Stay().CheckOut(),
		TotalAmount:   b.TotalAmount(),
		PaidAmount:    b.PaidAmount(),
		PaymentStatus: string(b.PaymentStatus()),
		Status:        string(b.Status()),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel, links bookingGuestLinks) (*bookingDomain.Booking, error) {
	stay, err := bookingDomain.NewStay(m.CheckIn, m.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("stored booking %s has invalid stay: %w", m.ID, err)
	}
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := bookingDomain.ParsePaymentStatus(m.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.OwnerID,
		m.RoomID,
		stay,
		m.TotalAmount,
		m.PaidAmount,
		paymentStatus,
		status,
		links.guestIDs,
		links.primaryID,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
