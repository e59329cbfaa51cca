package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

func TestValidateRequestRequiresInitialization(t *testing.T) {
	validate = nil

	err := ValidateRequest(sampleRequest{Name: "Marie", Email: "marie@example.com"})
	require.Error(t, err, "an uninitialized validator must not silently pass requests")

	NewValidator()

	err = ValidateRequest(sampleRequest{Name: "Marie", Email: "marie@example.com"})
	assert.NoError(t, err)

	err = ValidateRequest(sampleRequest{Name: "", Email: "not-an-email"})
	assert.Error(t, err)
}
