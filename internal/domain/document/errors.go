package document

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentNotDraft is returned when a mutation requires draft status
	ErrDocumentNotDraft = errors.New("document is not in draft status")

	// ErrInvalidTransition is returned when a lifecycle transition is not allowed
	ErrInvalidTransition = errors.New("invalid document status transition")

	// ErrDocumentAlreadyPaid indicates that the document has already been paid
	ErrDocumentAlreadyPaid = errors.New("document already paid")

	// ErrNumberConflict is returned when a generated document number
	// collides with an existing one
	ErrNumberConflict = errors.New("document number conflict")
)

// ValidationError represents an error that occurs during document validation
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

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrDocumentNotFound)
}
