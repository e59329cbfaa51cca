package errors

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// jsonDetailsPrefix tags the safe-details payload that carries the
// reportable details map through cockroachdb/errors redaction.
const jsonDetailsPrefix = "__json__:"

// ErrorBuilder chains context onto an error before marking it with a
// sentinel. It is not itself an error; Mark finishes the chain and
// returns the built error.
type ErrorBuilder struct {
	err error
}

// NewError starts a chain from a fresh error message
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a chain wrapping an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithHint attaches the message shown to the caller. Hints are safe for
// display; internal error text never is.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

// WithHintf is WithHint with formatting
func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches a structured details map that survives
// into the error response. Marshal failures drop the details silently
// rather than failing the chain.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, jsonDetailsPrefix+"%s", errors.Safe(string(marshaled)))
	return b
}

// Mark ties the chain to a sentinel so callers can errors.Is against it.
// Must be the last call in the chain.
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = errors.Mark(b.err, reference)
	return b.err
}
