package service

import (
	"context"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/repository"
)

// SupplierService defines the interface for supplier-related business logic
type SupplierService interface {
	ListSuppliers(ctx context.Context) ([]domain.SupplierWithInvoices, error)
	CreateSupplier(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error)
}

// SupplierServiceImpl implements the SupplierService interface
type SupplierServiceImpl struct {
	repository repository.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &SupplierServiceImpl{repository: repo}
}

// ListSuppliers returns every supplier with its invoices
func (s *SupplierServiceImpl) ListSuppliers(ctx context.Context) ([]domain.SupplierWithInvoices, error) {
	suppliers, err := s.repository.ListSuppliers(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "list_suppliers", Err: err}
	}
	return suppliers, nil
}

// CreateSupplier persists a new supplier
func (s *SupplierServiceImpl) CreateSupplier(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error) {
	supplier, err := s.repository.CreateSupplier(ctx, input)
	if err != nil {
		return nil, &ServiceError{Op: "create_supplier", Err: err}
	}
	return supplier, nil
}
