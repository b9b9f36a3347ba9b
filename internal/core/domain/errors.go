package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced id is absent from its collection.
	ErrNotFound = errors.New("not found")

	// ErrEmptyExport is returned when an export is requested over zero sales.
	ErrEmptyExport = errors.New("no sales to export")
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientStockError is returned when a sale asks for more units than are
// on hand. Available carries the current stock so the caller can report it.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// PersistenceError wraps a failed read or write against the blob store.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
