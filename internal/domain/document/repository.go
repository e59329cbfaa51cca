package document

import (
	"context"
	"time"

	"github.com/propfolio/propfolio/internal/types"
)

// Repository defines the interface for document persistence operations
type Repository interface {
	// CreateWithLineItems persists a document and its line items as a unit.
	// Callers run it inside a transaction; a line item failure must leave
	// no document row behind.
	CreateWithLineItems(ctx context.Context, doc *Document) error

	// Get retrieves a document by internal id, line items included
	Get(ctx context.Context, id string) (*Document, error)

	// GetByNumber retrieves a document by its public number
	GetByNumber(ctx context.Context, number string) (*Document, error)

	// UpdateDraft replaces a draft document's mutable fields and all of its
	// line items (delete-then-insert). The write is conditional on the
	// document still being in draft status.
	UpdateDraft(ctx context.Context, doc *Document) error

	// TransitionStatus moves a document from one lifecycle status to
	// another, stamping the transition time, with the write conditional on
	// the current status so concurrent transitions cannot both succeed.
	TransitionStatus(ctx context.Context, id string, from, to types.DocumentStatus, at time.Time) error

	// DeleteDraft removes a draft document and cascades its line items.
	// Rejected when the document is no longer a draft.
	DeleteDraft(ctx context.Context, id string) error

	// List retrieves documents based on filter criteria
	List(ctx context.Context, filter *types.DocumentFilter) ([]*Document, error)

	// Count returns the total count of documents based on filter criteria
	Count(ctx context.Context, filter *types.DocumentFilter) (int, error)

	// NextDocumentNumber allocates the next number for the given type and
	// year via an atomic counter increment. Allocation failures propagate;
	// the sequence never silently restarts.
	NextDocumentNumber(ctx context.Context, docType types.DocumentType, year int) (string, error)
}
