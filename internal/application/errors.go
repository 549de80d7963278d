package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrInvalidID     = errors.New("invalid ID")
	ErrInvalidFilter = errors.New("invalid filter")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IDError is a malformed bookmark ID
type IDError struct {
	ID string
}

func (e *IDError) Error() string {
	return fmt.Sprintf("invalid bookmark ID: %q", e.ID)
}

func (e *IDError) Is(target error) bool {
	return target == ErrInvalidID
}

// RangeError is a date range whose start lies after its end
type RangeError struct {
	From string
	To   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("date range starts after it ends: %s > %s", e.From, e.To)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidFilter
}
