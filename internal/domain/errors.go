package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies application errors for transport-level translation.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindForbidden    ErrorKind = "forbidden"
	KindUnauthorized ErrorKind = "unauthorized"
)

// AppError is the error type the application and domain layers return for
// caller-correctable failures. Anything else is treated as an internal error.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError reports invalid caller input.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports a missing (or out-of-scope) entity.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NewConflictError reports a state or uniqueness conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewInvalidStateError reports a disallowed status transition.
func NewInvalidStateError(from, to string) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf("invalid state transition from %s to %s", from, to)}
}

// NewForbiddenError reports an operation on a resource the caller does not own.
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// NewUnauthorizedError reports a missing or invalid credential.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// KindOf extracts the error kind, or "" for non-application errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found application error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsConflict reports whether err is a conflict application error.
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

// IsValidation reports whether err is a validation application error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
