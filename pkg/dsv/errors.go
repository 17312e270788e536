package dsv

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrSinkWrite indicates that the sink refused a write.
	ErrSinkWrite = errors.New("sink write failed")

	// ErrInvalidDelimiter indicates a delimiter that cannot separate fields.
	ErrInvalidDelimiter = errors.New("invalid delimiter")
)

// WriteError reports a sink failure while writing a row.
// Characters written before the failure are not rolled back.
type WriteError struct {
	// Row is the 1-indexed row being written.
	Row int
	// Field is the 0-indexed field being written, or -1 for the row separator.
	Field int
	// Err is the error returned by the sink.
	Err error
}

// Error returns a formatted error message with position information.
func (e *WriteError) Error() string {
	if e.Field < 0 {
		return fmt.Sprintf("%v: row %d separator: %v", ErrSinkWrite, e.Row, e.Err)
	}
	return fmt.Sprintf("%v: row %d, field %d: %v", ErrSinkWrite, e.Row, e.Field, e.Err)
}

// Unwrap returns the sink error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrSinkWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrSinkWrite
}

// validDelim reports whether r can be used as a field delimiter.
// A newline always separates rows, so it can never separate fields.
func validDelim(r rune) bool {
	return r != '\n' && utf8.ValidRune(r)
}

func checkDelim(r rune) error {
	if !validDelim(r) {
		return fmt.Errorf("%w: %q", ErrInvalidDelimiter, r)
	}
	return nil
}
