package document

import (
	"time"

	"github.com/propfolio/propfolio/internal/types"
)

// allowedTransitions defines the forward-only document lifecycle:
// draft -> sent -> viewed -> paid, with paid reachable directly from sent.
// Paid is terminal. Overdue/expired are derived views, never transitions.
var allowedTransitions = map[types.DocumentStatus][]types.DocumentStatus{
	types.DocumentStatusDraft: {
		types.DocumentStatusSent,
	},
	types.DocumentStatusSent: {
		types.DocumentStatusViewed,
		types.DocumentStatusPaid,
	},
	types.DocumentStatusViewed: {
		types.DocumentStatusPaid,
	},
	types.DocumentStatusPaid: {},
}

// CanTransition reports whether a status change is legal
func CanTransition(from, to types.DocumentStatus) bool {
	allowed, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// DeriveDisplayStatus computes the read-time status of a document. An
// unpaid document past its due date reads as overdue (invoices) or
// expired (quotes) while its persisted status stays sent/viewed.
func DeriveDisplayStatus(docType types.DocumentType, status types.DocumentStatus, dueDate *time.Time, now time.Time) types.DocumentDisplayStatus {
	pastDue := dueDate != nil && now.After(*dueDate)
	unpaid := status == types.DocumentStatusSent || status == types.DocumentStatusViewed

	if pastDue && unpaid {
		if docType == types.DocumentTypeQuote {
			return types.DocumentDisplayStatusExpired
		}
		return types.DocumentDisplayStatusOverdue
	}

	return types.DocumentDisplayStatus(status)
}
