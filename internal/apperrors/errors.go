// Package apperrors defines the closed set of domain error kinds
// surfaced at the operation boundary. Handlers map these to HTTP
// statuses; services never let them crash the process.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateEmail reports a registration against an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email is already registered")

	// ErrScheduleFormat reports an availability string that does not
	// match the expected "Mon-Fri, 9 AM - 5 PM" grammar.
	ErrScheduleFormat = errors.New("availability schedule is malformed")

	// ErrUnauthorized reports a failed capability or ownership check.
	ErrUnauthorized = errors.New("not allowed to perform this action")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidation builds a field-level validation error.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a referenced id that does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NewNotFound builds a not-found error for the given entity and id.
func NewNotFound(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// SlotUnavailableError reports a requested appointment time that falls
// outside the doctor's availability window. Reason distinguishes a
// day mismatch from a time mismatch so callers can surface it verbatim.
type SlotUnavailableError struct {
	Reason string
}

func (e *SlotUnavailableError) Error() string {
	return "slot unavailable: " + e.Reason
}

// NewSlotUnavailable builds a slot rejection carrying the specific reason.
func NewSlotUnavailable(reason string) *SlotUnavailableError {
	return &SlotUnavailableError{Reason: reason}
}
