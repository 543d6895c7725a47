package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrServerNotFound is returned when no server exists for an id.
	ErrServerNotFound = errors.New("server not found")
	// ErrServerExists is returned when creating a server with an id already in use.
	ErrServerExists = errors.New("server already exists")
	// ErrInvalidServer is returned for records missing required fields.
	ErrInvalidServer = errors.New("invalid server")
)

// NewInvalidServerError wraps ErrInvalidServer with a reason.
func NewInvalidServerError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidServer, reason)
}
