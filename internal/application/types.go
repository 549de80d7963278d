package application

import (
	"fmt"
	"strings"
	"time"

	"eterea/internal/domain"
)

// Re-export domain types for use by adapters
type (
	Bookmark     = domain.Bookmark
	Page         = domain.Page
	Stats        = domain.Stats
	TagCount     = domain.TagCount
	SearchFilter = domain.SearchFilter
	ImportReport = domain.ImportReport
)

// ParseDateBound parses a user-supplied date for a filter: either
// YYYY-MM-DD or RFC 3339. A bare date used as an upper bound covers the
// whole day.
func ParseDateBound(value string, upper bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}

	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, &ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("expected YYYY-MM-DD or RFC 3339, got: %s", value),
		}
	}
	if upper {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}
