package types

import (
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/samber/lo"
)

// DocumentType discriminates between the two billing document kinds.
// Invoices and quotes are structurally identical and separately numbered.
type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "INVOICE"
	DocumentTypeQuote   DocumentType = "QUOTE"
)

func (t DocumentType) String() string {
	return string(t)
}

func (t DocumentType) Validate() error {
	allowed := []DocumentType{
		DocumentTypeInvoice,
		DocumentTypeQuote,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid document type").
			WithHint("Please provide a valid document type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DocumentStatus represents the persisted state of a document in its
// lifecycle. Overdue and expired are derived at read time and never stored.
type DocumentStatus string

const (
	// DocumentStatusDraft indicates the document is fully mutable and deletable
	DocumentStatusDraft DocumentStatus = "DRAFT"
	// DocumentStatusSent indicates the document has been sent to its recipient
	DocumentStatusSent DocumentStatus = "SENT"
	// DocumentStatusViewed indicates the recipient has opened the document
	DocumentStatusViewed DocumentStatus = "VIEWED"
	// DocumentStatusPaid indicates payment was confirmed; terminal state
	DocumentStatusPaid DocumentStatus = "PAID"
)

func (s DocumentStatus) String() string {
	return string(s)
}

func (s DocumentStatus) Validate() error {
	allowed := []DocumentStatus{
		DocumentStatusDraft,
		DocumentStatusSent,
		DocumentStatusViewed,
		DocumentStatusPaid,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid document status").
			WithHint("Please provide a valid document status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DocumentDisplayStatus is the read-time view of a document's state. It is
// the persisted status plus the derived overdue (invoices) and expired
// (quotes) views for unpaid documents past their due date.
type DocumentDisplayStatus string

const (
	DocumentDisplayStatusDraft   DocumentDisplayStatus = "DRAFT"
	DocumentDisplayStatusSent    DocumentDisplayStatus = "SENT"
	DocumentDisplayStatusViewed  DocumentDisplayStatus = "VIEWED"
	DocumentDisplayStatusPaid    DocumentDisplayStatus = "PAID"
	DocumentDisplayStatusOverdue DocumentDisplayStatus = "OVERDUE"
	DocumentDisplayStatusExpired DocumentDisplayStatus = "EXPIRED"
)

func (s DocumentDisplayStatus) String() string {
	return string(s)
}

// DocumentFilter represents the filter options for listing documents
type DocumentFilter struct {
	*QueryFilter

	DocumentType   *DocumentType   `json:"document_type,omitempty" form:"document_type"`
	DocumentStatus *DocumentStatus `json:"document_status,omitempty" form:"document_status"`
	RecipientEmail *string         `json:"recipient_email,omitempty" form:"recipient_email"`
	Year           *int            `json:"year,omitempty" form:"year" validate:"omitempty,min=2000,max=2200"`
}

func (f *DocumentFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.DocumentType != nil {
		if err := f.DocumentType.Validate(); err != nil {
			return err
		}
	}
	if f.DocumentStatus != nil {
		if err := f.DocumentStatus.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GetLimit returns the pagination limit honoring defaults
func (f *DocumentFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset returns the pagination offset honoring defaults
func (f *DocumentFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}
