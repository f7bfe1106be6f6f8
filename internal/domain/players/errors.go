package players

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel matched by every lookup miss.
var ErrNotFound = errors.New("player not found")

// NotFoundError names the identifier that could not be resolved.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Player with ID %s not found", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFound returns a NotFoundError for id.
func NewNotFound(id string) error {
	return &NotFoundError{ID: id}
}
