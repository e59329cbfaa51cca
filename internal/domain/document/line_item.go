package document

import (
	"github.com/propfolio/propfolio/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem represents a single billable entry belonging to exactly one
// document. Line items are replaced wholesale when a draft is edited and
// cascade-deleted with their parent.
type LineItem struct {
	ID          string          `db:"id" json:"id"`
	DocumentID  string          `db:"document_id" json:"document_id"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	types.BaseModel
}

// Validate checks the line item invariants
func (i *LineItem) Validate() error {
	if i.Description == "" {
		return NewValidationError("description", "must not be empty")
	}
	if !i.Quantity.IsPositive() {
		return NewValidationError("quantity", "must be positive")
	}
	if i.UnitPrice.IsNegative() {
		return NewValidationError("unit_price", "must be non negative")
	}
	if !i.Amount.Equal(LineAmountFor(i.Quantity, i.UnitPrice)) {
		return NewValidationError("amount", "must equal quantity * unit_price")
	}
	return nil
}
