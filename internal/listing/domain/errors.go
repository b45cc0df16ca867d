package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation addresses an identity that does
// not resolve to a stored listing. Never retried automatically.
var ErrNotFound = errors.New("listing not found")

// FieldError names one invalid field so the caller can fix the request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every invariant violated by the input. A mutation
// that returns it has not touched the store.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid listing data"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid listing data: " + strings.Join(parts, "; ")
}

// NewValidationError wraps a non-empty field error list; returns nil otherwise
// so callers can pass validator output through unconditionally.
func NewValidationError(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// StoreError wraps a driver-level fault: the store is unreachable, timed out,
// or rejected the operation for reasons unrelated to the caller's input.
// Transient to the request; the core applies no retry policy of its own.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
