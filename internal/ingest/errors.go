package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRow marks input whose shape does not match the roster schema.
	ErrMalformedRow = errors.New("malformed roster row")
	// ErrSourceUnavailable marks a roster file that cannot be opened or read.
	ErrSourceUnavailable = errors.New("roster source unavailable")
	// ErrStoreWrite marks a failure persisting an accepted player.
	ErrStoreWrite = errors.New("roster store write failed")
	// ErrAlreadyLoaded is returned when a Loader is initialized twice.
	ErrAlreadyLoaded = errors.New("roster already loaded")
)

// RowError locates a fatal schema problem. It matches ErrMalformedRow.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	switch {
	case e.Column != "" && e.Line > 0:
		return fmt.Sprintf("line %d: column %s: %v", e.Line, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("column %s: %v", e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *RowError) Unwrap() error { return e.Err }

func (e *RowError) Is(target error) bool { return target == ErrMalformedRow }
