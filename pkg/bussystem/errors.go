package bussystem

import (
	"errors"
	"fmt"
)

// Loading errors. Each is reported wrapped in a *RowError.
var (
	ErrMissingHeader      = errors.New("missing required header")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrMissingColumn      = errors.New("missing column")
	ErrDuplicateStop      = errors.New("duplicate stop")
	ErrEmptyRouteName     = errors.New("empty route name")
	ErrUnknownStop        = errors.New("unknown stop")
	ErrDuplicateRouteStop = errors.New("duplicate stop on route")
	ErrRead               = errors.New("read failed")
)

// RowError records the row that ended loading of a file.
type RowError struct {
	// File is the configured name of the file.
	File string
	// Row is the 1-indexed row, counting the header row.
	Row int
	// Err is one of the package sentinels, possibly wrapping a parse error.
	Err error
}

// Error returns a formatted error message with position information.
func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d: %v", e.File, e.Row, e.Err)
}

// Unwrap returns the underlying error.
func (e *RowError) Unwrap() error {
	return e.Err
}
