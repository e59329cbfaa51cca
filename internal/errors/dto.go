package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorResponse is the JSON envelope every failed request returns.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the user-facing message and any reportable details
// attached through the builder.
type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse flattens an error built through this package into the
// response envelope. The first non-empty hint becomes the display message;
// reportable details are recovered from the safe-details payload.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Display: displayMessage(err),
			Details: safeDetails(err),
		},
	}
}

func displayMessage(err error) string {
	// GetAllHints is post-order traversal; first non-empty wins
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}

func safeDetails(err error) map[string]any {
	details := make(map[string]any)

	for _, sdp := range errors.GetAllSafeDetails(err) {
		for _, payload := range sdp.SafeDetails {
			jsonStr, ok := strings.CutPrefix(payload, jsonDetailsPrefix)
			if !ok {
				continue
			}
			var decoded map[string]any
			if err := json.Unmarshal([]byte(jsonStr), &decoded); err == nil {
				for k, v := range decoded {
					details[k] = v
				}
			}
		}
	}

	return details
}
