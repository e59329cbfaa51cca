package document

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineAmountFor(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		want      string
	}{
		{"whole units", "2", "19.99", "39.98"},
		{"fractional quantity", "1.5", "100", "150"},
		{"rounds half up", "3", "0.335", "1.01"},
		{"rounds down", "3", "0.333", "1"},
		{"zero price", "10", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineAmountFor(d(tt.quantity), d(tt.unitPrice))
			assert.True(t, d(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTaxAmountFor(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		rate     string
		want     string
	}{
		{"twenty percent", "39.98", "20", "8"},
		{"zero rate", "100", "0", "0"},
		{"fractional rate", "200", "8.25", "16.5"},
		{"rounding", "33.33", "7.7", "2.57"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaxAmountFor(d(tt.subtotal), d(tt.rate))
			assert.True(t, d(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	t.Run("single line item with tax", func(t *testing.T) {
		rate := d("20")
		totals, err := ComputeTotals([]LineItemInput{
			{Description: "Deep cleaning", Quantity: d("2"), UnitPrice: d("19.99")},
		}, &rate)
		require.NoError(t, err)

		assert.True(t, d("39.98").Equal(totals.Subtotal))
		assert.True(t, d("8").Equal(totals.TaxAmount))
		assert.True(t, d("47.98").Equal(totals.Total))
		require.Len(t, totals.LineItems, 1)
		assert.True(t, d("39.98").Equal(totals.LineItems[0].Amount))
	})

	t.Run("nil tax rate treated as zero", func(t *testing.T) {
		totals, err := ComputeTotals([]LineItemInput{
			{Description: "Key handover", Quantity: d("1"), UnitPrice: d("50")},
		}, nil)
		require.NoError(t, err)

		assert.True(t, totals.TaxRate.IsZero())
		assert.True(t, totals.TaxAmount.IsZero())
		assert.True(t, d("50").Equal(totals.Total))
	})

	t.Run("subtotal sums already rounded line amounts", func(t *testing.T) {
		// Each line rounds independently; the subtotal never re-rounds
		totals, err := ComputeTotals([]LineItemInput{
			{Description: "A", Quantity: d("3"), UnitPrice: d("0.335")},
			{Description: "B", Quantity: d("3"), UnitPrice: d("0.335")},
		}, nil)
		require.NoError(t, err)

		assert.True(t, d("2.02").Equal(totals.Subtotal), "got %s", totals.Subtotal)
	})

	t.Run("tax computed on subtotal in one step", func(t *testing.T) {
		rate := d("19")
		totals, err := ComputeTotals([]LineItemInput{
			{Description: "A", Quantity: d("1"), UnitPrice: d("10.01")},
			{Description: "B", Quantity: d("1"), UnitPrice: d("10.01")},
		}, &rate)
		require.NoError(t, err)

		// 20.02 * 0.19 = 3.8038, rounded once to 3.80
		assert.True(t, d("3.8").Equal(totals.TaxAmount), "got %s", totals.TaxAmount)
		assert.True(t, d("23.82").Equal(totals.Total))
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := ComputeTotals([]LineItemInput{
			{Description: "", Quantity: d("1"), UnitPrice: d("10")},
		}, nil)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		_, err := ComputeTotals([]LineItemInput{
			{Description: "A", Quantity: d("0"), UnitPrice: d("10")},
		}, nil)
		require.Error(t, err)

		_, err = ComputeTotals([]LineItemInput{
			{Description: "A", Quantity: d("-1"), UnitPrice: d("10")},
		}, nil)
		require.Error(t, err)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		_, err := ComputeTotals([]LineItemInput{
			{Description: "A", Quantity: d("1"), UnitPrice: d("-0.01")},
		}, nil)
		require.Error(t, err)
	})

	t.Run("rejects negative tax rate", func(t *testing.T) {
		rate := d("-5")
		_, err := ComputeTotals([]LineItemInput{
			{Description: "A", Quantity: d("1"), UnitPrice: d("10")},
		}, &rate)
		require.Error(t, err)
	})

	t.Run("rejects empty line items", func(t *testing.T) {
		_, err := ComputeTotals(nil, nil)
		require.Error(t, err)
	})
}
