package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotals(t *testing.T) {
	lines := []decimal.Decimal{
		LineTotal(decimal.RequireFromString("10.00"), 2),
		LineTotal(decimal.RequireFromString("5.50"), 1),
	}

	totals := CalculateTotals(lines)

	assert.Equal(t, "25.50", FormatAmount(totals.Subtotal))
	assert.Equal(t, "5.10", FormatAmount(totals.Tax))
	assert.Equal(t, "30.60", FormatAmount(totals.Total))
	assert.Equal(t, "25.50", totals.Amount())
}

func TestCalculateTotalsEmpty(t *testing.T) {
	totals := CalculateTotals(nil)
	assert.Equal(t, "0.00", totals.Amount())
	assert.Equal(t, "0.00", FormatAmount(totals.Total))
}

func TestLineTotalRoundsToCents(t *testing.T) {
	total := LineTotal(decimal.RequireFromString("0.333"), 3)
	assert.Equal(t, "1.00", FormatAmount(total))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "two places", input: "750.00", want: "750.00"},
		{name: "integer", input: "12", want: "12.00"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatAmount(got))
		})
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input     string
		want      string
		badFormat bool
		wantErr   bool
	}{
		{input: "750.00", want: "750.00"},
		{input: "12.5", want: "12.50"},
		{input: "12", want: "12.00"},
		{input: "-1", want: "-1.00"},
		{input: "10.123", badFormat: true},
		{input: "0.001", badFormat: true},
		{input: "1e2", badFormat: true},
		{input: "1E-2", badFormat: true},
		{input: "", wantErr: true},
		{input: "cheap", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			switch {
			case tt.badFormat:
				assert.ErrorIs(t, err, ErrMoneyFormat)
			case tt.wantErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrMoneyFormat)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, FormatAmount(got))
			}
		})
	}
}

func TestInvoiceWithLinesSubtotal(t *testing.T) {
	invoice := InvoiceWithLines{
		InvoiceLines: []InvoiceLineWithItem{
			{InvoiceLine: InvoiceLine{ID: "l1", Quantity: 2}, Item: Item{Price: "10.00"}},
			{InvoiceLine: InvoiceLine{ID: "l2", Quantity: 1}, Item: Item{Price: "5.50"}},
		},
	}

	subtotal, err := invoice.Subtotal()
	require.NoError(t, err)
	assert.Equal(t, "25.50", FormatAmount(subtotal))

	invoice.InvoiceLines[1].Item.Price = "n/a"
	_, err = invoice.Subtotal()
	assert.Error(t, err)
}
