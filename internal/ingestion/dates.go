package ingestion

import (
	"strings"
	"time"
)

// socialLayout is the created_at format of the platform's own API
const socialLayout = "Mon Jan 02 15:04:05 -0700 2006"

var (
	// "02:51 PM, May 01, 2024"
	legacyLayouts = []string{
		"3:04 PM, Jan 2, 2006",
		"Jan 2, 2006 3:04 PM",
		time.RFC3339,
	}
	// "2025-08-25T10:52:35.000Z"
	newLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999Z",
		"2006-01-02T15:04:05",
		socialLayout,
	}
	jsonLayouts = []string{
		time.RFC3339Nano,
		socialLayout,
	}
)

// ParseLegacyDate parses timestamps from the legacy CSV export
func ParseLegacyDate(value string) (time.Time, error) {
	return parseDate(value, legacyLayouts)
}

// ParseNewDate parses timestamps from the new CSV export
func ParseNewDate(value string) (time.Time, error) {
	return parseDate(value, newLayouts)
}

// ParseJSONDate parses timestamps from JSON exports
func ParseJSONDate(value string) (time.Time, error) {
	return parseDate(value, jsonLayouts)
}

// parseDate tries each layout in order. Values without a zone are UTC.
func parseDate(value string, layouts []string) (time.Time, error) {
	s := cleanDate(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &DateError{Value: value}
}

func cleanDate(value string) string {
	return strings.Trim(strings.TrimSpace(value), `"`)
}

// optionalDate treats a blank value as absent, leaving the zero time for
// the builder to report as missing.
func optionalDate(value string, parse func(string) (time.Time, error)) (time.Time, error) {
	if cleanDate(value) == "" {
		return time.Time{}, nil
	}
	return parse(value)
}
