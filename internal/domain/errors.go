package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Typed errors below unwrap to one of these so callers can use errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrForbidden        = errors.New("forbidden")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError is returned for incomplete or malformed input and illegal transitions
type ValidationError struct {
	MissingFields []string
	Reason        string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func NewMissingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{MissingFields: fields, Reason: "missing required fields"}
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.MissingFields, ", "))
	}
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError is returned when a write would overlap an active booking
type ConflictError struct {
	ConflictingBookingID int64 // 0 when the store rejected the write without naming the row
	Reason               string
}

func NewConflictError(conflictingID int64, reason string) *ConflictError {
	return &ConflictError{ConflictingBookingID: conflictingID, Reason: reason}
}

func (e *ConflictError) Error() string {
	if e.ConflictingBookingID != 0 {
		return fmt.Sprintf("%s (conflicts with booking %d)", e.Reason, e.ConflictingBookingID)
	}
	return e.Reason
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NotFoundError is returned when a referenced entity does not exist
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: fmt.Sprint(id)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// StoreUnavailableError wraps a persistence failure on the write path
type StoreUnavailableError struct {
	Op    string
	Cause error
}

func NewStoreUnavailableError(op string, cause error) *StoreUnavailableError {
	return &StoreUnavailableError{Op: op, Cause: cause}
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Cause)
}

func (e *StoreUnavailableError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Cause}
}

// Forbidden builds an access error with a reason
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}
