package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/repository"
)

// InvoiceService defines the interface for invoice business logic
type InvoiceService interface {
	ListInvoices(ctx context.Context) ([]domain.InvoiceWithLines, error)
	GetInvoice(ctx context.Context, id string) (*domain.InvoiceWithLines, error)
	CreateInvoice(ctx context.Context, invoice domain.InvoiceInput, lines []domain.InvoiceLineInput) (*domain.InvoiceWithLines, error)
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	repository repository.Store
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(store repository.Store) InvoiceService {
	return &InvoiceServiceImpl{repository: store}
}

// ListInvoices returns every invoice joined with its supplier and lines
func (s *InvoiceServiceImpl) ListInvoices(ctx context.Context) ([]domain.InvoiceWithLines, error) {
	invoices, err := s.repository.ListInvoices(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "list_invoices", Err: err}
	}
	return invoices, nil
}

// GetInvoice returns one joined invoice. The error wraps
// repository.ErrNotFound when the invoice does not exist.
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, id string) (*domain.InvoiceWithLines, error) {
	invoice, err := s.repository.GetInvoice(ctx, id)
	if err != nil {
		return nil, &ServiceError{Op: "get_invoice", Err: err}
	}
	return invoice, nil
}

// CreateInvoice checks that the supplier and every referenced item exist,
// persists the invoice with its lines and returns the joined result.
// The declared amount is stored as given.
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, invoice domain.InvoiceInput, lines []domain.InvoiceLineInput) (*domain.InvoiceWithLines, error) {
	if err := s.checkReferences(ctx, invoice, lines); err != nil {
		return nil, err
	}

	created, _, err := s.repository.CreateInvoiceWithLines(ctx, invoice, lines)
	if err != nil {
		return nil, &ServiceError{Op: "create_invoice", Err: err}
	}

	joined, err := s.repository.GetInvoice(ctx, created.ID)
	if err != nil {
		return nil, &ServiceError{Op: "get_created_invoice", Err: err}
	}
	return joined, nil
}

func (s *InvoiceServiceImpl) checkReferences(ctx context.Context, invoice domain.InvoiceInput, lines []domain.InvoiceLineInput) error {
	var fields []FieldError

	if _, err := s.repository.GetSupplier(ctx, invoice.SupplierID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return &ServiceError{Op: "get_supplier", Err: err}
		}
		fields = append(fields, FieldError{Field: "invoice.supplierId", Message: "Supplier does not exist"})
	}

	for i, line := range lines {
		if _, err := s.repository.GetItem(ctx, line.ItemID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return &ServiceError{Op: "get_item", Err: err}
			}
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("invoiceLines[%d].itemId", i),
				Message: "Item does not exist",
			})
		}
	}

	if len(fields) > 0 {
		return &InvalidInputError{Fields: fields}
	}
	return nil
}
