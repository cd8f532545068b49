package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat tax applied on top of an invoice subtotal
var TaxRate = decimal.RequireFromString("0.20")

// Invoice represents an invoice issued by a supplier.
// Amount is the pre-tax subtotal of its lines as 2-place decimal text.
type Invoice struct {
	ID            string    `json:"id"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Amount        string    `json:"amount"`
	SupplierID    string    `json:"supplierId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InvoiceInput holds the header fields required to create an invoice
type InvoiceInput struct {
	InvoiceNumber string
	Amount        string
	SupplierID    string
}

// InvoiceLine represents a quantity of one item on one invoice
type InvoiceLine struct {
	ID        string `json:"id"`
	Quantity  int    `json:"quantity"`
	InvoiceID string `json:"invoiceId"`
	ItemID    string `json:"itemId"`
}

// InvoiceLineInput holds the fields required to create an invoice line.
// InvoiceID may be left empty when the line is created together with its invoice.
type InvoiceLineInput struct {
	InvoiceID string
	ItemID    string
	Quantity  int
}

// InvoiceLineWithItem is an invoice line joined with its catalog item
type InvoiceLineWithItem struct {
	InvoiceLine
	Item Item `json:"item"`
}

// InvoiceWithLines is an invoice joined with its supplier and lines
type InvoiceWithLines struct {
	Invoice
	Supplier     Supplier              `json:"supplier"`
	InvoiceLines []InvoiceLineWithItem `json:"invoiceLines"`
}

// Subtotal recomputes the pre-tax total from the joined lines
func (i InvoiceWithLines) Subtotal() (decimal.Decimal, error) {
	totals := make([]decimal.Decimal, 0, len(i.InvoiceLines))
	for _, line := range i.InvoiceLines {
		price, err := ParseAmount(line.Item.Price)
		if err != nil {
			return decimal.Zero, fmt.Errorf("line %s: %w", line.ID, err)
		}
		totals = append(totals, LineTotal(price, line.Quantity))
	}
	return CalculateTotals(totals).Subtotal, nil
}

// Totals holds the derived money figures of an invoice
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Amount returns the subtotal formatted the way it is persisted on the invoice
func (t Totals) Amount() string {
	return FormatAmount(t.Subtotal)
}

// LineTotal calculates price times quantity rounded to cents
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// CalculateTotals sums line totals and applies the flat tax rate
func CalculateTotals(lineTotals []decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, total := range lineTotals {
		subtotal = subtotal.Add(total)
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ParseAmount parses decimal money text such as "750.00"
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// ErrMoneyFormat is returned for decimal text that is not a plain cents value
var ErrMoneyFormat = errors.New("amount must be plain digits with at most 2 decimal places")

// ParseMoney parses a currency amount as accepted from callers: plain digits,
// an optional sign and at most two decimal places. Exponent forms such as
// "1e2" and sub-cent values such as "0.001" are rejected.
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, err
	}
	if strings.ContainsAny(s, "eE") || d.Exponent() < -2 {
		return decimal.Zero, ErrMoneyFormat
	}
	return d, nil
}

// FormatAmount formats a money value with exactly two decimal places
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
