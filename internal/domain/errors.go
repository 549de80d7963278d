package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound   = errors.New("bookmark not found")
	ErrValidation = errors.New("invalid bookmark")
)

// MissingFieldError lists the required fields a record did not provide
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("%s is required", e.Fields[0])
	}
	return fmt.Sprintf("%s are required", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrValidation
}

// Missing reports whether field is among the missing ones
func (e *MissingFieldError) Missing(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}
