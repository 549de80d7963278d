package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eterea/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts field names to words for error messages
// (e.g., "id" -> "bookmark ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"id":     "bookmark ID",
		"path":   "file path",
		"query":  "query",
		"limit":  "limit",
		"offset": "offset",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateID checks that id is present and is a UUID as assigned at import.
// A malformed ID returns an *IDError (matches ErrInvalidID).
func ValidateID(fieldName, id string) error {
	if err := ValidateRequired(fieldName, id); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return &IDError{ID: id}
	}
	return nil
}

// ValidateNonNegative rejects negative paging values
func ValidateNonNegative(fieldName string, n int) error {
	if n < 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must not be negative, got %d", formatFieldName(fieldName), n),
		}
	}
	return nil
}

// ValidateFilter checks paging values and the date range of f
func ValidateFilter(f domain.SearchFilter) error {
	if err := ValidateNonNegative("offset", f.Offset); err != nil {
		return err
	}
	if err := ValidateNonNegative("limit", f.Limit); err != nil {
		return err
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return &RangeError{
			From: f.From.Format(time.DateOnly),
			To:   f.To.Format(time.DateOnly),
		}
	}
	return nil
}
