package service

import (
	"context"
	"sort"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	recentInvoiceCount = 5
	topSupplierCount   = 5
)

// ReportService defines the interface for aggregate reporting
type ReportService interface {
	Summary(ctx context.Context) (*domain.ReportSummary, error)
}

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	repository repository.Store
}

// NewReportService creates a new ReportService
func NewReportService(store repository.Store) ReportService {
	return &ReportServiceImpl{repository: store}
}

// Summary aggregates invoice, item and supplier figures
func (s *ReportServiceImpl) Summary(ctx context.Context) (*domain.ReportSummary, error) {
	invoices, err := s.repository.ListInvoices(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "summary_invoices", Err: err}
	}
	items, err := s.repository.ListItems(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "summary_items", Err: err}
	}
	suppliers, err := s.repository.ListSuppliers(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "summary_suppliers", Err: err}
	}

	summary := &domain.ReportSummary{
		TotalInvoices:        len(invoices),
		TotalAmount:          decimal.Zero,
		AverageInvoiceAmount: decimal.Zero,
		TotalItems:           len(items),
		AverageItemPrice:     decimal.Zero,
		HighestItemPrice:     decimal.Zero,
		LowestItemPrice:      decimal.Zero,
		TotalSuppliers:       len(suppliers),
		RecentInvoices:       invoices[:min(len(invoices), recentInvoiceCount)],
	}

	// Unparseable amounts are left out of the sums
	for _, inv := range invoices {
		if amount, err := domain.ParseAmount(inv.Amount); err == nil {
			summary.TotalAmount = summary.TotalAmount.Add(amount)
		}
	}
	if len(invoices) > 0 {
		summary.AverageInvoiceAmount = summary.TotalAmount.Div(decimal.NewFromInt(int64(len(invoices)))).Round(2)
	}

	summarizePrices(summary, items)

	stats := make([]domain.SupplierStats, 0, len(suppliers))
	for _, sup := range suppliers {
		total := decimal.Zero
		for _, inv := range sup.Invoices {
			if amount, err := domain.ParseAmount(inv.Amount); err == nil {
				total = total.Add(amount)
			}
		}
		stats = append(stats, domain.SupplierStats{
			Supplier:     sup.Supplier,
			InvoiceCount: len(sup.Invoices),
			TotalAmount:  total,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].InvoiceCount > stats[j].InvoiceCount
	})
	summary.TopSuppliers = stats[:min(len(stats), topSupplierCount)]

	return summary, nil
}

// summarizePrices fills the catalog price figures. Items with unparseable
// prices are skipped; all figures stay zero on an empty catalog.
func summarizePrices(summary *domain.ReportSummary, items []domain.Item) {
	total := decimal.Zero
	count := 0
	for _, item := range items {
		price, err := domain.ParseAmount(item.Price)
		if err != nil {
			continue
		}
		if count == 0 || price.GreaterThan(summary.HighestItemPrice) {
			summary.HighestItemPrice = price
		}
		if count == 0 || price.LessThan(summary.LowestItemPrice) {
			summary.LowestItemPrice = price
		}
		total = total.Add(price)
		count++
	}
	if count > 0 {
		summary.AverageItemPrice = total.Div(decimal.NewFromInt(int64(count))).Round(2)
	}
}
