package guest

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

// Gender of a registered guest.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// IsValid returns true if the value is a recognized gender.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Identity is the triple that identifies one natural person within an
// owner's guest pool. A match on any single field means "same guest"; if the
// remaining fields then disagree, that is a data conflict, not a new guest.
type Identity struct {
	Email         string
	ContactNumber string
	CNIC          string
}

// MatchesAny reports whether any identifying field matches.
func (i Identity) MatchesAny(o Identity) bool {
	return i.Email == o.Email || i.ContactNumber == o.ContactNumber || i.CNIC == o.CNIC
}

// Equals reports whether all identifying fields match.
func (i Identity) Equals(o Identity) bool {
	return i.Email == o.Email && i.ContactNumber == o.ContactNumber && i.CNIC == o.CNIC
}

// Guest is an owner-scoped registered guest. Which guest is the primary
// contact is a per-booking attribute and lives on the booking, not here; the
// same person can be primary on one booking and a companion on another.
type Guest struct {
	id       uuid.UUID
	ownerID  uuid.UUID
	fullName string
	identity Identity
	gender   Gender
	address  string

	createdAt time.Time
	updatedAt time.Time
}

// NewGuest creates a new guest record bound to the owner.
func NewGuest(
	ownerID uuid.UUID,
	fullName string,
	identity Identity,
	gender Gender,
	address string,
) (*Guest, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if fullName == "" {
		return nil, domain.NewValidationError("guest full name is required")
	}
	if identity.Email == "" || identity.ContactNumber == "" || identity.CNIC == "" {
		return nil, domain.NewValidationError("guest email, contact number and CNIC are required")
	}
	if !gender.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid gender: %s", gender))
	}
	if address == "" {
		return nil, domain.NewValidationError("guest address is required")
	}

	now := time.Now().UTC()
	return &Guest{
		id:        uuid.New(),
		ownerID:   ownerID,
		fullName:  fullName,
		identity:  identity,
		gender:    gender,
		address:   address,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Guest from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	fullName string,
	identity Identity,
	gender Gender,
	address string,
	createdAt, updatedAt time.Time,
) *Guest {
	return &Guest{
		id:        id,
		ownerID:   ownerID,
		fullName:  fullName,
		identity:  identity,
		gender:    gender,
		address:   address,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (g *Guest) ID() uuid.UUID        { return g.id }
func (g *Guest) OwnerID() uuid.UUID   { return g.ownerID }
func (g *Guest) FullName() string     { return g.fullName }
func (g *Guest) Identity() Identity   { return g.identity }
func (g *Guest) Gender() Gender       { return g.gender }
func (g *Guest) Address() string      { return g.address }
func (g *Guest) CreatedAt() time.Time { return g.createdAt }
func (g *Guest) UpdatedAt() time.Time { return g.updatedAt }

// --- Behavior ---

// Update applies partial updates to the guest record.
func (g *Guest) Update(fullName string, identity Identity, gender Gender, address string) error {
	if fullName != "" {
		g.fullName = fullName
	}
	if identity.Email != "" {
		g.identity.Email = identity.Email
	}
	if identity.ContactNumber != "" {
		g.identity.ContactNumber = identity.ContactNumber
	}
	if identity.CNIC != "" {
		g.identity.CNIC = identity.CNIC
	}
	if gender != "" {
		if !gender.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid gender: %s", gender))
		}
		g.gender = gender
	}
	if address != "" {
		g.address = address
	}
	g.updatedAt = time.Now().UTC()
	return nil
}
