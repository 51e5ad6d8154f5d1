package booking

import (
	"fmt"

	"github.com/hotel-redisons/service-hotel/internal/domain"
)

// PaymentStatus tracks how much of a booking has been settled. It is a pure
// function of (paidAmount, totalAmount) except when the booking is cancelled,
// in which case it is forced to Cancelled together with the booking status.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentPaid      PaymentStatus = "Paid"
	PaymentCancelled PaymentStatus = "Cancelled"
)

// IsValid returns true if the value is a recognized payment status.
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	}
	return false
}

// String returns the string representation of the payment status.
func (p PaymentStatus) String() string {
	return string(p)
}

// ParsePaymentStatus converts a string to a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", domain.NewValidationError(fmt.Sprintf("invalid payment status: %s", s))
	}
	return status, nil
}

// DerivePaymentStatus computes the payment status from the amounts:
// Paid once paidAmount covers totalAmount, Pending otherwise. The derivation
// is idempotent; cancellation is handled separately by the aggregate.
func DerivePaymentStatus(paidAmount, totalAmount float64) PaymentStatus {
	if paidAmount >= totalAmount {
		return PaymentPaid
	}
	return PaymentPending
}
