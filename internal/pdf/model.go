package pdf

import (
	"encoding/json"
	"time"
)

// DocumentRenderData is the data model handed to a PDF renderer. It is a
// flat snapshot of an invoice or quote: amounts are pre-formatted
// strings so the renderer never does money arithmetic of its own.
type DocumentRenderData struct {
	ID             string     `json:"id"`
	DocumentType   string     `json:"document_type"`
	DocumentNumber string     `json:"document_number"`
	DocumentStatus string     `json:"document_status"`
	DisplayStatus  string     `json:"display_status"`
	IssuingDate    CustomTime `json:"issuing_date"`
	DueDate        CustomTime `json:"due_date"`
	Subtotal       string     `json:"subtotal"`
	TaxRate        string     `json:"tax_rate"`
	TaxAmount      string     `json:"tax_amount"`
	Total          string     `json:"total"`
	Notes          string     `json:"notes,omitempty"`

	Issuer    *IssuerInfo    `json:"issuer"`
	Recipient *RecipientInfo `json:"recipient"`

	LineItems []LineItemData `json:"line_items"`
}

// IssuerInfo contains the business details printed at the top of the document
type IssuerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`
}

// RecipientInfo contains the party the document is addressed to
type RecipientInfo struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// LineItemData represents one billed line on the rendered document
type LineItemData struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
}

type CustomTime struct {
	time.Time
}

func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(ct.Format("2006-01-02"))
}
