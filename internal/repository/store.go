package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
)

// ErrNotFound is returned when a single-entity read has nothing to return.
// It is a lookup result, not a validation failure.
var ErrNotFound = errors.New("not found")

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// SupplierRepository defines supplier storage operations
type SupplierRepository interface {
	// ListSuppliers returns every supplier joined with its invoices
	ListSuppliers(ctx context.Context) ([]domain.SupplierWithInvoices, error)

	// GetSupplier returns a bare supplier or ErrNotFound
	GetSupplier(ctx context.Context, id string) (*domain.Supplier, error)

	// CreateSupplier assigns an id and persists the supplier
	CreateSupplier(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error)
}

// ItemRepository defines catalog storage operations
type ItemRepository interface {
	// ListItems returns every item in insertion order
	ListItems(ctx context.Context) ([]domain.Item, error)

	// GetItem returns an item or ErrNotFound
	GetItem(ctx context.Context, id string) (*domain.Item, error)

	// FindItemByNameAndPrice returns the first item whose name matches
	// case-insensitively and whose price text matches exactly, or ErrNotFound
	FindItemByNameAndPrice(ctx context.Context, name, price string) (*domain.Item, error)

	// SearchItems returns items whose name contains the filter name and whose
	// price does not exceed the filter bound
	SearchItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)

	// CreateItem assigns an id and persists the item without checking for duplicates
	CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error)
}

// InvoiceRepository defines invoice and invoice line storage operations
type InvoiceRepository interface {
	// ListInvoices returns every invoice whose supplier resolves, joined with
	// its supplier and lines
	ListInvoices(ctx context.Context) ([]domain.InvoiceWithLines, error)

	// GetInvoice returns one joined invoice or ErrNotFound
	GetInvoice(ctx context.Context, id string) (*domain.InvoiceWithLines, error)

	// CreateInvoice assigns an id and creation time and persists the bare invoice
	CreateInvoice(ctx context.Context, input domain.InvoiceInput) (*domain.Invoice, error)

	// CreateInvoiceLine assigns an id and persists the bare line
	CreateInvoiceLine(ctx context.Context, input domain.InvoiceLineInput) (*domain.InvoiceLine, error)

	// ListInvoiceLines returns the lines of one invoice joined with their items.
	// Lines whose item is missing are dropped.
	ListInvoiceLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLineWithItem, error)

	// CreateInvoiceWithLines persists an invoice followed by its lines. Whether
	// the sequence is atomic depends on the implementation.
	CreateInvoiceWithLines(ctx context.Context, input domain.InvoiceInput, lines []domain.InvoiceLineInput) (*domain.Invoice, []domain.InvoiceLine, error)
}

// Store is the full persistence contract of the service
type Store interface {
	SupplierRepository
	ItemRepository
	InvoiceRepository
}
