package domain

import "github.com/shopspring/decimal"

// ReportSummary represents aggregate figures across the whole ledger
type ReportSummary struct {
	TotalInvoices        int
	TotalAmount          decimal.Decimal
	AverageInvoiceAmount decimal.Decimal
	TotalItems           int
	AverageItemPrice     decimal.Decimal
	HighestItemPrice     decimal.Decimal
	LowestItemPrice      decimal.Decimal
	TotalSuppliers       int
	RecentInvoices       []InvoiceWithLines
	TopSuppliers         []SupplierStats
}

// SupplierStats represents invoice volume for a single supplier
type SupplierStats struct {
	Supplier     Supplier
	InvoiceCount int
	TotalAmount  decimal.Decimal
}
