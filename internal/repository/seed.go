package repository

import (
	"context"
	"fmt"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
)

// Seed loads the sample ledger used for demos and local development.
// It does nothing when the store already holds suppliers.
func Seed(ctx context.Context, store Store) error {
	existing, err := store.ListSuppliers(ctx)
	if err != nil {
		return &RepositoryError{Op: "seed", Err: err}
	}
	if len(existing) > 0 {
		return nil
	}

	matierFer, err := store.CreateSupplier(ctx, domain.SupplierInput{
		Name:    "Matier Fer",
		Address: "123 Rue Hassan II, Casablanca",
		Phone:   "+212612345678",
	})
	if err != nil {
		return &RepositoryError{Op: "seed", Err: fmt.Errorf("failed to create supplier: %w", err)}
	}

	if _, err := store.CreateSupplier(ctx, domain.SupplierInput{
		Name:    "TechParts Morocco",
		Address: "456 Boulevard Mohammed V, Rabat",
		Phone:   "+212687654321",
	}); err != nil {
		return &RepositoryError{Op: "seed", Err: fmt.Errorf("failed to create supplier: %w", err)}
	}

	table, err := store.CreateItem(ctx, domain.ItemInput{Name: "Table en bois", Price: "750.00"})
	if err != nil {
		return &RepositoryError{Op: "seed", Err: fmt.Errorf("failed to create item: %w", err)}
	}
	if _, err := store.CreateItem(ctx, domain.ItemInput{Name: "Chair en métal", Price: "125.00"}); err != nil {
		return &RepositoryError{Op: "seed", Err: fmt.Errorf("failed to create item: %w", err)}
	}

	_, _, err = store.CreateInvoiceWithLines(ctx, domain.InvoiceInput{
		InvoiceNumber: "INV-2025-001",
		Amount:        "1500.00",
		SupplierID:    matierFer.ID,
	}, []domain.InvoiceLineInput{
		{ItemID: table.ID, Quantity: 2},
	})
	if err != nil {
		return &RepositoryError{Op: "seed", Err: fmt.Errorf("failed to create invoice: %w", err)}
	}

	return nil
}
