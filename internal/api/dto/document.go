package dto

import (
	"time"

	"github.com/propfolio/propfolio/internal/domain/document"
	ierr "github.com/propfolio/propfolio/internal/errors"
	"github.com/propfolio/propfolio/internal/types"
	"github.com/propfolio/propfolio/internal/validator"
	"github.com/shopspring/decimal"
)

// CreateDocumentLineItemRequest represents a single line item in a
// document creation or update request. Amounts are never accepted from
// the caller; they are derived server side.
type CreateDocumentLineItemRequest struct {
	// description is the human-readable text for this line
	Description string `json:"description" validate:"required"`

	// quantity is the number of billed units, must be positive
	Quantity decimal.Decimal `json:"quantity" validate:"required"`

	// unit_price is the price per unit, must be non-negative
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// CreateDocumentRequest represents the request payload for creating a new
// invoice or quote. The document is always created in draft status with a
// server-assigned number.
type CreateDocumentRequest struct {
	// document_type indicates whether this is an INVOICE or a QUOTE
	DocumentType types.DocumentType `json:"document_type" validate:"required"`

	// recipient_name is the display name of the billed party
	RecipientName string `json:"recipient_name" validate:"required"`

	// recipient_email is where the document notification is delivered
	RecipientEmail string `json:"recipient_email" validate:"required,email"`

	// due_date is optional; when omitted a default is applied per document type
	DueDate *time.Time `json:"due_date,omitempty"`

	// tax_rate is the tax percentage applied to the subtotal (e.g. 20 for 20%)
	TaxRate *decimal.Decimal `json:"tax_rate,omitempty"`

	// notes is optional free text printed on the document
	Notes string `json:"notes,omitempty"`

	// line_items are the billable entries, at least one is required
	LineItems []CreateDocumentLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

func (r *CreateDocumentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := r.DocumentType.Validate(); err != nil {
		return err
	}

	return validateLineItems(r.LineItems, r.TaxRate)
}

// LineItemInputs converts the request line items to domain inputs
func (r *CreateDocumentRequest) LineItemInputs() []document.LineItemInput {
	return toLineItemInputs(r.LineItems)
}

// UpdateDocumentRequest represents the request payload for editing a
// draft document. All line items are replaced wholesale.
type UpdateDocumentRequest struct {
	RecipientName  string                          `json:"recipient_name" validate:"required"`
	RecipientEmail string                          `json:"recipient_email" validate:"required,email"`
	DueDate        *time.Time                      `json:"due_date,omitempty"`
	TaxRate        *decimal.Decimal                `json:"tax_rate,omitempty"`
	Notes          string                          `json:"notes,omitempty"`
	LineItems      []CreateDocumentLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

func (r *UpdateDocumentRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validateLineItems(r.LineItems, r.TaxRate)
}

// LineItemInputs converts the request line items to domain inputs
func (r *UpdateDocumentRequest) LineItemInputs() []document.LineItemInput {
	return toLineItemInputs(r.LineItems)
}

func validateLineItems(items []CreateDocumentLineItemRequest, taxRate *decimal.Decimal) error {
	if taxRate != nil && taxRate.IsNegative() {
		return ierr.NewError("tax_rate must be non-negative").
			WithHint("Tax rate cannot be negative").
			WithReportableDetails(map[string]any{
				"tax_rate": taxRate.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	for i, item := range items {
		if !item.Quantity.IsPositive() {
			return ierr.NewError("quantity must be positive").
				WithHint("Each line item needs a positive quantity").
				WithReportableDetails(map[string]any{
					"index":    i,
					"quantity": item.Quantity.String(),
				}).
				Mark(ierr.ErrValidation)
		}
		if item.UnitPrice.IsNegative() {
			return ierr.NewError("unit_price must be non-negative").
				WithHint("Line item unit price cannot be negative").
				WithReportableDetails(map[string]any{
					"index":      i,
					"unit_price": item.UnitPrice.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func toLineItemInputs(items []CreateDocumentLineItemRequest) []document.LineItemInput {
	inputs := make([]document.LineItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, document.LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return inputs
}

// DocumentLineItemResponse represents a line item in document responses
type DocumentLineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// DocumentResponse represents a document in API responses. display_status
// is derived at response time and may differ from document_status for
// overdue invoices and expired quotes.
type DocumentResponse struct {
	ID             string                      `json:"id"`
	DocumentType   types.DocumentType          `json:"document_type"`
	DocumentNumber string                      `json:"document_number"`
	DocumentStatus types.DocumentStatus        `json:"document_status"`
	DisplayStatus  types.DocumentDisplayStatus `json:"display_status"`
	RecipientName  string                      `json:"recipient_name"`
	RecipientEmail string                      `json:"recipient_email"`
	DueDate        *time.Time                  `json:"due_date,omitempty"`
	SentAt         *time.Time                  `json:"sent_at,omitempty"`
	ViewedAt       *time.Time                  `json:"viewed_at,omitempty"`
	PaidAt         *time.Time                  `json:"paid_at,omitempty"`
	Subtotal       decimal.Decimal             `json:"subtotal"`
	TaxRate        decimal.Decimal             `json:"tax_rate"`
	TaxAmount      decimal.Decimal             `json:"tax_amount"`
	Total          decimal.Decimal             `json:"total"`
	Notes          string                      `json:"notes,omitempty"`
	LineItems      []*DocumentLineItemResponse `json:"line_items,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// NewDocumentResponse creates a document response from a domain document
func NewDocumentResponse(doc *document.Document, now time.Time) *DocumentResponse {
	resp := &DocumentResponse{
		ID:             doc.ID,
		DocumentType:   doc.DocumentType,
		DocumentNumber: doc.DocumentNumber,
		DocumentStatus: doc.DocumentStatus,
		DisplayStatus:  doc.DisplayStatus(now),
		RecipientName:  doc.RecipientName,
		RecipientEmail: doc.RecipientEmail,
		DueDate:        doc.DueDate,
		SentAt:         doc.SentAt,
		ViewedAt:       doc.ViewedAt,
		PaidAt:         doc.PaidAt,
		Subtotal:       doc.Subtotal,
		TaxRate:        doc.TaxRate,
		TaxAmount:      doc.TaxAmount,
		Total:          doc.Total,
		Notes:          doc.Notes,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}

	resp.LineItems = make([]*DocumentLineItemResponse, 0, len(doc.LineItems))
	for _, item := range doc.LineItems {
		resp.LineItems = append(resp.LineItems, &DocumentLineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	return resp
}

// ListDocumentsResponse represents a paginated list of documents
type ListDocumentsResponse = types.ListResponse[*DocumentResponse]
