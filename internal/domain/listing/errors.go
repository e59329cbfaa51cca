package listing

import (
	"errors"
	"fmt"
)

var (
	// ErrListingNotFound is returned when a listing is not found
	ErrListingNotFound = errors.New("listing not found")

	// ErrListingAssigned is returned when archiving a listing that is still
	// part of a client portfolio
	ErrListingAssigned = errors.New("listing is assigned to a client portfolio")
)

// ValidationError represents an error that occurs during listing validation
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
