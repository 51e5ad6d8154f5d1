package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hotel-redisons/service-hotel/internal/domain"
	guestDomain "github.com/hotel-redisons/service-hotel/internal/domain/guest"
)

// GuestModel is the GORM model for the guests table. The per-owner unique
// indexes on the identity fields are the last line of defense against
// concurrent duplicate registration.
type GuestModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_guests_owner_email;uniqueIndex:idx_guests_owner_contact;uniqueIndex:idx_guests_owner_cnic"`
	FullName       string    `gorm:"not null;size:200"`
	ContactNumber  string    `gorm:"not null;size:50;uniqueIndex:idx_guests_owner_contact"`
	CNIC           string    `gorm:"column:cnic;not null;size:50;uniqueIndex:idx_guests_owner_cnic"`
	Email          string    `gorm:"not null;size:254;uniqueIndex:idx_guests_owner_email"`
	Gender         string    `gorm:"not null;size:10"`
	Address        string    `gorm:"not null;size:500"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (GuestModel) TableName() string {
	return "guests"
}

// GormGuestRepository is the GORM-based implementation of guest.Repository.
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGormGuestRepository creates a new GormGuestRepository.
func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// FindByID retrieves a guest by ID within the owner's scope.
func (r *GormGuestRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*guestDomain.Guest, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Guest", id.String())
		}
		return nil, fmt.Errorf("failed to find guest by ID: %w", err)
	}
	return toDomainGuest(&model), nil
}

// FindByIdentity retrieves the first guest matching any identity field in the
// owner's pool, or (nil, nil) when none matches.
func (r *GormGuestRepository) FindByIdentity(ctx context.Context, ownerID uuid.UUID, identity guestDomain.Identity) (*guestDomain.Guest, error) {
	var model GuestModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("email = ? OR contact_number = ? OR cnic = ?", identity.Email, identity.ContactNumber, identity.CNIC).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find guest by identity: %w", err)
	}
	return toDomainGuest(&model), nil
}

// FindByIDs retrieves guests by ID, preserving the input order.
func (r *GormGuestRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*guestDomain.Guest, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []GuestModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find guests by IDs: %w", err)
	}

	byID := make(map[uuid.UUID]*guestDomain.Guest, len(models))
	for i := range models {
		byID[models[i].ID] = toDomainGuest(&models[i])
	}
	guests := make([]*guestDomain.Guest, 0, len(ids))
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			guests = append(guests, g)
		}
	}
	return guests, nil
}

// FindByOwner retrieves the owner's guests, newest-created first.
func (r *GormGuestRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*guestDomain.Guest, error) {
	var models []GuestModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find guests: %w", err)
	}
	guests := make([]*guestDomain.Guest, len(models))
	for i := range models {
		guests[i] = toDomainGuest(&models[i])
	}
	return guests, nil
}

// Save persists a new guest.
func (r *GormGuestRepository) Save(ctx context.Context, g *guestDomain.Guest) error {
	model := toGuestModel(g)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError(fmt.Sprintf("guest %s already exists", g.FullName()))
		}
		return fmt.Errorf("failed to save guest: %w", err)
	}
	return nil
}

// Update persists changes to an existing guest.
func (r *GormGuestRepository) Update(ctx context.Context, g *guestDomain.Guest) error {
	model := toGuestModel(g)
	result := r.db.WithContext(ctx).
		Model(&GuestModel{}).
		Where("id = ? AND owner_id = ?", model.ID, model.OwnerID).
		Updates(map[string]interface{}{
			"full_name":      model.FullName,
			"contact_number": model.ContactNumber,
			"cnic":           model.CNIC,
			"email":          model.Email,
			"gender":         model.Gender,
			"address":        model.Address,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError(fmt.Sprintf("guest %s already exists", g.FullName()))
		}
		return fmt.Errorf("failed to update guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Guest", g.ID().String())
	}
	return nil
}

// Delete removes the guest within the owner's scope.
func (r *GormGuestRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&GuestModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete guest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Guest", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toGuestModel(g *guestDomain.Guest) *GuestModel {
	identity := g.Identity()
	return &GuestModel{
		ID:             g.ID(),
		OwnerID:        g.OwnerID(),
		FullName:       g.FullName(),
		ContactNumber:  identity.ContactNumber,
		CNIC:           identity.CNIC,
		Email:          identity.Email,
		Gender:         string(g.Gender()),
		Address:        g.Address(),
		CreatedAt:      g.CreatedAt(),
		UpdatedAt:      g.UpdatedAt(),
	}
}

func toDomainGuest(m *GuestModel) *guestDomain.Guest {
	return guestDomain.Reconstruct(
		m.ID,
		m.OwnerID,
		m.FullName,
		guestDomain.Identity{Email: m.Email, ContactNumber: m.ContactNumber, CNIC: m.CNIC},
		guestDomain.Gender(m.Gender),
		m.Address,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
