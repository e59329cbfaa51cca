package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderMarksSentinel(t *testing.T) {
	err := NewError("document is not a draft").
		WithHint("Only draft documents can be edited").
		Mark(ErrInvalidOperation)

	assert.True(t, IsInvalidOperation(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusFromErr(err))
}

func TestErrorResponseCarriesHintAndDetails(t *testing.T) {
	err := NewError("transition rejected").
		WithHintf("Document cannot move from %s to %s", "DRAFT", "PAID").
		WithReportableDetails(map[string]any{
			"document_status": "DRAFT",
			"target_status":   "PAID",
		}).
		Mark(ErrInvalidOperation)

	resp := NewErrorResponse(err)
	require.False(t, resp.Success)
	assert.Equal(t, "Document cannot move from DRAFT to PAID", resp.Error.Display)
	assert.Equal(t, "DRAFT", resp.Error.Details["document_status"])
	assert.Equal(t, "PAID", resp.Error.Details["target_status"])
}

func TestErrorResponseWithoutHintFallsBack(t *testing.T) {
	resp := NewErrorResponse(errors.New("pq: connection refused"))
	assert.Equal(t, "An unexpected error occurred", resp.Error.Display)
	assert.Empty(t, resp.Error.Details)
}

func TestHTTPStatusDefaultsToInternalError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromErr(errors.New("unmarked")))
}
