package document

import (
	"github.com/shopspring/decimal"
)

// moneyPlaces is the scale monetary amounts are rounded to. Each line
// amount and the tax amount get exactly one final rounding step; sums of
// already-rounded values never drift.
const moneyPlaces = 2

// LineItemInput is one billable entry as submitted by a caller, before
// any derived amounts exist.
type LineItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// ComputedLineItem is a line item input annotated with its derived amount
type ComputedLineItem struct {
	LineItemInput
	Amount decimal.Decimal
}

// Totals holds the aggregate figures derived from a set of line items
type Totals struct {
	LineItems []ComputedLineItem
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// LineAmountFor derives a single line amount from quantity and unit price
func LineAmountFor(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice).Round(moneyPlaces)
}

// TaxAmountFor derives the tax amount from a subtotal and a percentage rate
func TaxAmountFor(subtotal, taxRatePercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRatePercent).Div(decimal.NewFromInt(100)).Round(moneyPlaces)
}

// ComputeTotals derives per-line amounts, subtotal, tax amount and grand
// total from the given line items. A nil tax rate is treated as zero.
// The function is pure; it touches no persistence and mutates no input.
func ComputeTotals(items []LineItemInput, taxRatePercent *decimal.Decimal) (*Totals, error) {
	rate := decimal.Zero
	if taxRatePercent != nil {
		rate = *taxRatePercent
	}
	if rate.IsNegative() {
		return nil, NewValidationError("tax_rate", "must be non negative")
	}
	if len(items) == 0 {
		return nil, NewValidationError("line_items", "must not be empty")
	}

	computed := make([]ComputedLineItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Description == "" {
			return nil, NewValidationError("description", "must not be empty")
		}
		if !item.Quantity.IsPositive() {
			return nil, NewValidationError("quantity", "must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, NewValidationError("unit_price", "must be non negative")
		}

		amount := LineAmountFor(item.Quantity, item.UnitPrice)
		computed = append(computed, ComputedLineItem{
			LineItemInput: item,
			Amount:        amount,
		})
		subtotal = subtotal.Add(amount)
	}

	taxAmount := TaxAmountFor(subtotal, rate)

	return &Totals{
		LineItems: computed,
		Subtotal:  subtotal,
		TaxRate:   rate,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}, nil
}
