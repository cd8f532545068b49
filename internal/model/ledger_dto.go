package model

import "github.com/ridwanfathin/supplier-invoice-service/internal/domain"

// CreateSupplierRequest is the body of POST /suppliers
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required" example:"Matier Fer"`
	Address string `json:"address" binding:"required" example:"123 Rue Industrielle, Casablanca"`
	Phone   string `json:"phone" binding:"required" example:"+212 522 123 456"`
}

// CreateItemRequest is the body of POST /items
type CreateItemRequest struct {
	Name  string      `json:"name" binding:"required" example:"Table en bois"`
	Price DecimalText `json:"price" swaggertype:"string" example:"750.00"`
}

// InvoiceHeaderRequest carries the invoice header fields
type InvoiceHeaderRequest struct {
	InvoiceNumber string      `json:"invoiceNumber" binding:"required" example:"INV-2025-004"`
	Amount        DecimalText `json:"amount" swaggertype:"string" example:"1500.00"`
	SupplierID    string      `json:"supplierId" binding:"required"`
}

// InvoiceLineRequest references an existing item by id
type InvoiceLineRequest struct {
	Quantity int    `json:"quantity" example:"2"`
	ItemID   string `json:"itemId"`
}

// CreateInvoiceRequest is the body of POST /invoices
type CreateInvoiceRequest struct {
	Invoice      InvoiceHeaderRequest `json:"invoice"`
	InvoiceLines []InvoiceLineRequest `json:"invoiceLines"`
}

// ToInputs converts the request into store inputs
func (r CreateInvoiceRequest) ToInputs() (domain.InvoiceInput, []domain.InvoiceLineInput) {
	lines := make([]domain.InvoiceLineInput, 0, len(r.InvoiceLines))
	for _, l := range r.InvoiceLines {
		lines = append(lines, domain.InvoiceLineInput{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	return domain.InvoiceInput{
		InvoiceNumber: r.Invoice.InvoiceNumber,
		Amount:        r.Invoice.Amount.String(),
		SupplierID:    r.Invoice.SupplierID,
	}, lines
}

// SupplierStatsResponse is one row of the top suppliers table
type SupplierStatsResponse struct {
	Supplier     domain.Supplier `json:"supplier"`
	InvoiceCount int             `json:"invoiceCount"`
	TotalAmount  string          `json:"totalAmount" example:"1500.00"`
}

// ReportSummaryResponse represents aggregate ledger figures
type ReportSummaryResponse struct {
	TotalInvoices        int                       `json:"totalInvoices"`
	TotalAmount          string                    `json:"totalAmount" example:"1500.00"`
	AverageInvoiceAmount string                    `json:"averageInvoiceAmount" example:"1500.00"`
	TotalItems           int                       `json:"totalItems"`
	AverageItemPrice     string                    `json:"averageItemPrice" example:"437.50"`
	HighestItemPrice     string                    `json:"highestItemPrice" example:"750.00"`
	LowestItemPrice      string                    `json:"lowestItemPrice" example:"125.00"`
	TotalSuppliers       int                       `json:"totalSuppliers"`
	RecentInvoices       []domain.InvoiceWithLines `json:"recentInvoices"`
	TopSuppliers         []SupplierStatsResponse   `json:"topSuppliers"`
}

// NewReportSummaryResponse formats a summary for the wire
func NewReportSummaryResponse(s *domain.ReportSummary) ReportSummaryResponse {
	top := make([]SupplierStatsResponse, 0, len(s.TopSuppliers))
	for _, st := range s.TopSuppliers {
		top = append(top, SupplierStatsResponse{
			Supplier:     st.Supplier,
			InvoiceCount: st.InvoiceCount,
			TotalAmount:  domain.FormatAmount(st.TotalAmount),
		})
	}
	recent := s.RecentInvoices
	if recent == nil {
		recent = []domain.InvoiceWithLines{}
	}
	return ReportSummaryResponse{
		TotalInvoices:        s.TotalInvoices,
		TotalAmount:          domain.FormatAmount(s.TotalAmount),
		AverageInvoiceAmount: domain.FormatAmount(s.AverageInvoiceAmount),
		TotalItems:           s.TotalItems,
		AverageItemPrice:     domain.FormatAmount(s.AverageItemPrice),
		HighestItemPrice:     domain.FormatAmount(s.HighestItemPrice),
		LowestItemPrice:      domain.FormatAmount(s.LowestItemPrice),
		TotalSuppliers:       s.TotalSuppliers,
		RecentInvoices:       recent,
		TopSuppliers:         top,
	}
}
