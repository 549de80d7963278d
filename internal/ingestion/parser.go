package ingestion

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"eterea/internal/domain"
)

// Parser turns one export document into canonical bookmarks
type Parser interface {
	Format() Format
	Parse(r io.Reader) (*ParseResult, error)
}

// ParseResult holds the bookmarks built from a document and the rows that
// were skipped on the way.
type ParseResult struct {
	Format    Format
	Bookmarks []*domain.Bookmark
	Skipped   []RowError
}

func (r *ParseResult) skip(row int, err error) {
	r.Skipped = append(r.Skipped, RowError{Row: row, Err: err})
}

// ParserFor returns the parser of a detected format
func ParserFor(f Format) (Parser, error) {
	switch f {
	case FormatLegacyCSV:
		return LegacyCSVParser{}, nil
	case FormatNewCSV:
		return NewCSVParser{}, nil
	case FormatJSON:
		return JSONParser{}, nil
	default:
		return nil, ErrFormatUndetected
	}
}

// parseCSV skips the header and feeds each record to build. Malformed
// records and build failures are recorded as skipped rows.
func parseCSV(r io.Reader, f Format, build func(record []string) (*domain.Bookmark, error)) (*ParseResult, error) {
	res := &ParseResult{Format: f, Bookmarks: []*domain.Bookmark{}}

	reader := csv.NewReader(r)
	if _, err := readHeader(reader); err != nil {
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		return nil, err
	}

	for row := 2; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.skip(row, err)
				continue
			}
			return nil, err
		}

		b, err := build(record)
		if err != nil {
			res.skip(row, err)
			continue
		}
		res.Bookmarks = append(res.Bookmarks, b)
	}
	return res, nil
}

// field returns the value at position i, or "" past the end of a short record
func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

// splitList splits on sep, trimming each piece and dropping empties
func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
