package document

import (
	"fmt"
	"time"

	"github.com/propfolio/propfolio/internal/types"
)

// Sequence represents the per-type, per-year document number counter.
// The counter row is incremented atomically at the persistence layer so
// that concurrent creations can never observe the same value.
type Sequence struct {
	DocumentType types.DocumentType `db:"document_type"`
	Year         int                `db:"year"`
	LastValue    int64              `db:"last_value"`
	CreatedAt    time.Time          `db:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at"`
}

// FormatNumber renders a document number as {prefix}-{year}-{suffix} with
// the suffix zero-padded to width digits. Sequences past the padded range
// widen naturally instead of truncating (e.g. width 3, seq 1000 ->
// INV-2026-1000).
func FormatNumber(prefix string, year int, seq int64, width int) string {
	if width <= 0 {
		width = 3
	}
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, width, seq)
}
