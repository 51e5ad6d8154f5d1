package booking

import (
	"fmt"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

// Status represents the current state of a booking in its lifecycle.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusCheckedIn  Status = "Checked-In"
	StatusCheckedOut Status = "Checked-Out"
	StatusCancelled  Status = "Cancelled"
)

// validTransitions defines the forward-only state machine; any non-terminal
// state may move to Cancelled.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusCheckedOut, StatusCancelled},
	StatusCheckedOut: {StatusCancelled},
	StatusCancelled:  {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", domain.NewValidationError(fmt.Sprintf("invalid booking status: %s", s))
	}
	return status, nil
}
