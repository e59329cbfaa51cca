package pdf

import (
	"time"

	"github.com/propfolio/propfolio/internal/config"
	"github.com/propfolio/propfolio/internal/domain/document"
)

// Generator renders a document snapshot into a PDF byte stream.
type Generator interface {
	Render(data *DocumentRenderData) ([]byte, error)
}

// BuildRenderData flattens a document into its render contract. Display
// status is derived at build time so a stale snapshot is never printed.
func BuildRenderData(doc *document.Document, cfg *config.Configuration, now time.Time) *DocumentRenderData {
	data := &DocumentRenderData{
		ID:             doc.ID,
		DocumentType:   string(doc.DocumentType),
		DocumentNumber: doc.DocumentNumber,
		DocumentStatus: string(doc.DocumentStatus),
		DisplayStatus:  string(doc.DisplayStatus(now)),
		IssuingDate:    CustomTime{doc.CreatedAt},
		Subtotal:       doc.Subtotal.StringFixed(2),
		TaxRate:        doc.TaxRate.StringFixed(2),
		TaxAmount:      doc.TaxAmount.StringFixed(2),
		Total:          doc.Total.StringFixed(2),
		Notes:          doc.Notes,
		Issuer: &IssuerInfo{
			Name:  cfg.Portal.BusinessName,
			Email: cfg.Email.FromAddress,
		},
		Recipient: &RecipientInfo{
			Name:  doc.RecipientName,
			Email: doc.RecipientEmail,
		},
	}
	if doc.DueDate != nil {
		data.DueDate = CustomTime{*doc.DueDate}
	}

	data.LineItems = make([]LineItemData, 0, len(doc.LineItems))
	for _, item := range doc.LineItems {
		data.LineItems = append(data.LineItems, LineItemData{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
		})
	}
	return data
}
