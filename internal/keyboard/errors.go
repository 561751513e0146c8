package keyboard

import (
	"errors"
	"fmt"
)

// Errors returned by Resolve. Use errors.Is to test for them.
var (
	// ErrInvalidRange indicates a value outside its permitted range.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidType indicates a value of the wrong kind.
	ErrInvalidType = errors.New("invalid type")
)

// Failure kinds reported by KindOf.
const (
	KindInvalidRange = "InvalidRange"
	KindInvalidType  = "InvalidType"
	KindInternal     = "Internal"
)

// ValidationError describes a rejected request.
type ValidationError struct {
	// Field is the request field that failed validation.
	Field string

	// Value is the rejected value.
	Value any

	// Kind is ErrInvalidRange or ErrInvalidType.
	Kind error

	// Reason describes the failure.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s (got %v)", e.Kind, e.Field, e.Reason, e.Value)
}

// Unwrap returns the kind sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// RangeError returns a ValidationError of kind ErrInvalidRange.
func RangeError(field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Value: value, Kind: ErrInvalidRange, Reason: fmt.Sprintf(format, args...)}
}

// TypeError returns a ValidationError of kind ErrInvalidType.
func TypeError(field string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Value: value, Kind: ErrInvalidType, Reason: fmt.Sprintf(format, args...)}
}

// KindOf returns the failure kind name of err.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRange):
		return KindInvalidRange
	case errors.Is(err, ErrInvalidType):
		return KindInvalidType
	default:
		return KindInternal
	}
}
