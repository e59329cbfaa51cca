package document

import (
	"testing"
	"time"

	"github.com/propfolio/propfolio/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    types.DocumentStatus
		to      types.DocumentStatus
		allowed bool
	}{
		{types.DocumentStatusDraft, types.DocumentStatusSent, true},
		{types.DocumentStatusSent, types.DocumentStatusViewed, true},
		{types.DocumentStatusSent, types.DocumentStatusPaid, true},
		{types.DocumentStatusViewed, types.DocumentStatusPaid, true},

		{types.DocumentStatusDraft, types.DocumentStatusViewed, false},
		{types.DocumentStatusDraft, types.DocumentStatusPaid, false},
		{types.DocumentStatusSent, types.DocumentStatusDraft, false},
		{types.DocumentStatusViewed, types.DocumentStatusSent, false},
		{types.DocumentStatusViewed, types.DocumentStatusDraft, false},
		{types.DocumentStatusPaid, types.DocumentStatusDraft, false},
		{types.DocumentStatusPaid, types.DocumentStatusSent, false},
		{types.DocumentStatusPaid, types.DocumentStatusViewed, false},
	}

	for _, tt := range tests {
		got := CanTransition(tt.from, tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestDeriveDisplayStatus(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		docType types.DocumentType
		status  types.DocumentStatus
		dueDate *time.Time
		want    types.DocumentDisplayStatus
	}{
		{"draft never overdue", types.DocumentTypeInvoice, types.DocumentStatusDraft, &past, types.DocumentDisplayStatusDraft},
		{"sent before due date", types.DocumentTypeInvoice, types.DocumentStatusSent, &future, types.DocumentDisplayStatusSent},
		{"sent invoice past due", types.DocumentTypeInvoice, types.DocumentStatusSent, &past, types.DocumentDisplayStatusOverdue},
		{"viewed invoice past due", types.DocumentTypeInvoice, types.DocumentStatusViewed, &past, types.DocumentDisplayStatusOverdue},
		{"sent quote past due", types.DocumentTypeQuote, types.DocumentStatusSent, &past, types.DocumentDisplayStatusExpired},
		{"viewed quote past due", types.DocumentTypeQuote, types.DocumentStatusViewed, &past, types.DocumentDisplayStatusExpired},
		{"paid never overdue", types.DocumentTypeInvoice, types.DocumentStatusPaid, &past, types.DocumentDisplayStatusPaid},
		{"no due date", types.DocumentTypeInvoice, types.DocumentStatusSent, nil, types.DocumentDisplayStatusSent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveDisplayStatus(tt.docType, tt.status, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-2026-001", FormatNumber("INV", 2026, 1, 3))
	assert.Equal(t, "INV-2026-042", FormatNumber("INV", 2026, 42, 3))
	assert.Equal(t, "QUO-2027-999", FormatNumber("QUO", 2027, 999, 3))

	// Past the padded range the suffix widens instead of truncating
	assert.Equal(t, "INV-2026-1000", FormatNumber("INV", 2026, 1000, 3))

	// Zero width falls back to the default
	assert.Equal(t, "INV-2026-007", FormatNumber("INV", 2026, 7, 0))
}
