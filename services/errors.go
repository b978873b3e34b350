package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ValidationError reports a bad input value. Field names the offending
// field so callers can show a precise message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Message)
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// InvalidStatusError reports a status outside the order status enumeration.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}

// ConflictError reports a uniqueness violation that survived the bounded
// retry of a generator (order_id or payment reference).
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s %q", e.Field, e.Value)
}

// StorageError wraps an underlying persistence failure. It is surfaced
// as-is, never swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// isUniqueViolation reports whether err is a uniqueness-constraint
// failure. Matched for both backends: postgres at runtime, sqlite in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
