package client

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")

	// ErrListingAlreadyAssigned is returned when assigning a listing that
	// is already part of the client's portfolio
	ErrListingAlreadyAssigned = errors.New("listing already assigned to client")

	// ErrListingNotAssigned is returned when unassigning a listing that is
	// not part of the client's portfolio
	ErrListingNotAssigned = errors.New("listing not assigned to client")
)

// ValidationError represents an error that occurs during client validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
