package document

import (
	"time"

	"github.com/propfolio/propfolio/internal/types"
	"github.com/shopspring/decimal"
)

// Document represents a billing document (invoice or quote) owned by a
// property manager. The document number and owner are immutable once the
// document is created; financial fields are always derived from line items.
type Document struct {
	ID             string                `db:"id" json:"id"`
	DocumentType   types.DocumentType    `db:"document_type" json:"document_type"`
	DocumentNumber string                `db:"document_number" json:"document_number"`
	DocumentStatus types.DocumentStatus  `db:"document_status" json:"document_status"`
	RecipientName  string                `db:"recipient_name" json:"recipient_name"`
	RecipientEmail string                `db:"recipient_email" json:"recipient_email"`
	DueDate        *time.Time            `db:"due_date" json:"due_date,omitempty"`
	SentAt         *time.Time            `db:"sent_at" json:"sent_at,omitempty"`
	ViewedAt       *time.Time            `db:"viewed_at" json:"viewed_at,omitempty"`
	PaidAt         *time.Time            `db:"paid_at" json:"paid_at,omitempty"`
	Subtotal       decimal.Decimal       `db:"subtotal" json:"subtotal"`
	TaxRate        decimal.Decimal       `db:"tax_rate" json:"tax_rate"`
	TaxAmount      decimal.Decimal       `db:"tax_amount" json:"tax_amount"`
	Total          decimal.Decimal       `db:"total" json:"total"`
	Notes          string                `db:"notes" json:"notes,omitempty"`
	OwnerID        string                `db:"owner_id" json:"owner_id"`
	LineItems      []*LineItem           `db:"-" json:"line_items,omitempty"`
	types.BaseModel
}

// DisplayStatus returns the read-time view of the document's state,
// deriving overdue/expired for unpaid documents past their due date.
func (d *Document) DisplayStatus(now time.Time) types.DocumentDisplayStatus {
	return DeriveDisplayStatus(d.DocumentType, d.DocumentStatus, d.DueDate, now)
}

// IsDraft reports whether the document is still fully mutable
func (d *Document) IsDraft() bool {
	return d.DocumentStatus == types.DocumentStatusDraft
}

// Validate checks the document's structural and financial invariants
func (d *Document) Validate() error {
	if err := d.DocumentType.Validate(); err != nil {
		return err
	}
	if err := d.DocumentStatus.Validate(); err != nil {
		return err
	}

	if d.RecipientName == "" {
		return NewValidationError("recipient_name", "must not be empty")
	}
	if d.RecipientEmail == "" {
		return NewValidationError("recipient_email", "must not be empty")
	}
	if d.OwnerID == "" {
		return NewValidationError("owner_id", "must not be empty")
	}

	if d.TaxRate.IsNegative() {
		return NewValidationError("tax_rate", "must be non negative")
	}
	if d.Subtotal.IsNegative() {
		return NewValidationError("subtotal", "must be non negative")
	}
	if d.TaxAmount.IsNegative() {
		return NewValidationError("tax_amount", "must be non negative")
	}
	if d.Total.IsNegative() {
		return NewValidationError("total", "must be non negative")
	}

	if len(d.LineItems) == 0 {
		return NewValidationError("line_items", "must not be empty")
	}

	// totals must match what the line items produce
	lineSum := decimal.Zero
	for _, item := range d.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
		lineSum = lineSum.Add(item.Amount)
	}
	if !d.Subtotal.Equal(lineSum) {
		return NewValidationError("subtotal", "must equal the sum of line item amounts")
	}

	expectedTax := TaxAmountFor(d.Subtotal, d.TaxRate)
	if !d.TaxAmount.Equal(expectedTax) {
		return NewValidationError("tax_amount", "must equal subtotal * tax_rate / 100")
	}
	if !d.Total.Equal(d.Subtotal.Add(d.TaxAmount)) {
		return NewValidationError("total", "must equal subtotal + tax_amount")
	}

	return nil
}
