package ingestion

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an input dialect
type Format int

const (
	FormatUnknown Format = iota
	FormatLegacyCSV
	FormatNewCSV
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatLegacyCSV:
		return "legacy-csv"
	case FormatNewCSV:
		return "new-csv"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// fileKind is the extension-level decision made before the file is opened
type fileKind int

const (
	kindCSV fileKind = iota + 1
	kindJSON
)

// classifyExtension maps a lower-cased extension to a file kind
func classifyExtension(path string) (fileKind, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "csv":
		return kindCSV, nil
	case "json":
		return kindJSON, nil
	default:
		return 0, &UnsupportedFileTypeError{Extension: ext}
	}
}

// DetectFormat decides the dialect of the file at path. The extension is
// checked before the file is touched; only CSV files are opened.
func DetectFormat(path string) (Format, error) {
	kind, err := classifyExtension(path)
	if err != nil {
		return FormatUnknown, err
	}
	if kind == kindJSON {
		return FormatJSON, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	format, err := DetectCSVDialect(f)
	if err != nil {
		return FormatUnknown, wrapFileError(path, err)
	}
	return format, nil
}

// DetectCSVDialect reads the header row and decides between the legacy and
// new exports. Legacy markers win when both appear.
func DetectCSVDialect(r io.Reader) (Format, error) {
	header, err := readHeader(csv.NewReader(r))
	if err != nil && !errors.Is(err, io.EOF) {
		return FormatUnknown, err
	}

	joined := strings.ToLower(strings.Join(header, ","))
	switch {
	case strings.Contains(joined, "tweet date") || strings.Contains(joined, "posted by"):
		return FormatLegacyCSV, nil
	case strings.Contains(joined, "screen_name") || strings.Contains(joined, "tweeted_at"):
		return FormatNewCSV, nil
	default:
		return FormatUnknown, &FormatUndetectedError{Header: joined}
	}
}

// readHeader reads the first record, dropping a UTF-8 byte order mark
func readHeader(r *csv.Reader) ([]string, error) {
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, nil
}
