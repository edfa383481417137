package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a mutation is rejected before any state change
	ErrValidation = errors.New("invalid input")
	// ErrNotFound is returned when a mutation names an unknown task or list
	ErrNotFound = errors.New("not found")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func taskNotFound(id string) error {
	return fmt.Errorf("task %q: %w", id, ErrNotFound)
}

func listNotFound(id string) error {
	return fmt.Errorf("list %q: %w", id, ErrNotFound)
}
