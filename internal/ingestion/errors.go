package ingestion

import (
	"errors"
	"fmt"
)

// Sentinel errors for file-level failures
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFormatUndetected    = errors.New("could not detect format")
)

// UnsupportedFileTypeError is returned for any extension other than .csv or .json
type UnsupportedFileTypeError struct {
	Extension string
}

func (e *UnsupportedFileTypeError) Error() string {
	if e.Extension == "" {
		return "unsupported file type: no extension"
	}
	return fmt.Sprintf("unsupported file type: %s", e.Extension)
}

func (e *UnsupportedFileTypeError) Is(target error) bool {
	return target == ErrUnsupportedFileType
}

// FormatUndetectedError carries the lower-cased, comma-joined header row
// that matched no known CSV dialect.
type FormatUndetectedError struct {
	Header string
}

func (e *FormatUndetectedError) Error() string {
	return fmt.Sprintf("could not detect CSV format. Headers: %s", e.Header)
}

func (e *FormatUndetectedError) Is(target error) bool {
	return target == ErrFormatUndetected
}

// FileError is a failure that stops a whole file: unreadable, or a JSON
// document that is not an array.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// RowError is one skipped record. Row is 1-based; for CSV the header is row 1.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// DateError is a timestamp no known layout accepts
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("could not parse date: %q", e.Value)
}
