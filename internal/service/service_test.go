package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *repository.MemoryStore
	suppliers SupplierService
	items     ItemService
	invoices  InvoiceService
	reports   ReportService
}

func newFixture() fixture {
	store := repository.NewMemoryStore()
	return fixture{
		store:     store,
		suppliers: NewSupplierService(store),
		items:     NewItemService(store),
		invoices:  NewInvoiceService(store),
		reports:   NewReportService(store),
	}
}

func TestCreateInvoiceReturnsJoinedInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	supplier, err := f.suppliers.CreateSupplier(ctx, domain.SupplierInput{Name: "Atlas", Address: "Tanger", Phone: "0600"})
	require.NoError(t, err)
	item, err := f.items.CreateItem(ctx, domain.ItemInput{Name: "Hammer", Price: "10.00"})
	require.NoError(t, err)

	invoice, err := f.invoices.CreateInvoice(ctx,
		domain.InvoiceInput{InvoiceNumber: "INV-7", Amount: "20.00", SupplierID: supplier.ID},
		[]domain.InvoiceLineInput{{ItemID: item.ID, Quantity: 2}},
	)
	require.NoError(t, err)

	assert.Equal(t, "INV-7", invoice.InvoiceNumber)
	assert.Equal(t, "20.00", invoice.Amount)
	assert.Equal(t, supplier.Name, invoice.Supplier.Name)
	require.Len(t, invoice.InvoiceLines, 1)
	assert.Equal(t, item.ID, invoice.InvoiceLines[0].Item.ID)
}

func TestCreateInvoiceRejectsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	item, err := f.items.CreateItem(ctx, domain.ItemInput{Name: "Hammer", Price: "10.00"})
	require.NoError(t, err)

	_, err = f.invoices.CreateInvoice(ctx,
		domain.InvoiceInput{InvoiceNumber: "INV-7", Amount: "20.00", SupplierID: "nobody"},
		[]domain.InvoiceLineInput{{ItemID: item.ID, Quantity: 1}, {ItemID: "ghost", Quantity: 1}},
	)
	invalid, ok := IsInvalidInput(err)
	require.True(t, ok)
	require.Len(t, invalid.Fields, 2)
	assert.Equal(t, "invoice.supplierId", invalid.Fields[0].Field)
	assert.Equal(t, "invoiceLines[1].itemId", invalid.Fields[1].Field)

	invoices, err := f.invoices.ListInvoices(ctx)
	require.NoError(t, err)
	assert.Empty(t, invoices, "nothing is persisted when references are invalid")
}

func TestGetInvoiceNotFoundIsDetectable(t *testing.T) {
	f := newFixture()

	_, err := f.invoices.GetInvoice(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "get_invoice", svcErr.Op)
}

func TestFindItemExactMatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	created, err := f.items.CreateItem(ctx, domain.ItemInput{Name: "Table en bois", Price: "750.00"})
	require.NoError(t, err)

	found, err := f.items.FindItem(ctx, "table EN BOIS", "750.00")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = f.items.FindItem(ctx, "table en bois", "750")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	busy, err := f.suppliers.CreateSupplier(ctx, domain.SupplierInput{Name: "Busy", Address: "A", Phone: "1"})
	require.NoError(t, err)
	quiet, err := f.suppliers.CreateSupplier(ctx, domain.SupplierInput{Name: "Quiet", Address: "B", Phone: "2"})
	require.NoError(t, err)
	item, err := f.items.CreateItem(ctx, domain.ItemInput{Name: "Widget", Price: "5.00"})
	require.NoError(t, err)

	create := func(number, amount, supplierID string) {
		_, err := f.invoices.CreateInvoice(ctx,
			domain.InvoiceInput{InvoiceNumber: number, Amount: amount, SupplierID: supplierID},
			[]domain.InvoiceLineInput{{ItemID: item.ID, Quantity: 1}},
		)
		require.NoError(t, err)
	}
	create("INV-1", "10.00", quiet.ID)
	create("INV-2", "20.00", busy.ID)
	create("INV-3", "30.50", busy.ID)

	summary, err := f.reports.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalInvoices)
	assert.Equal(t, "60.50", domain.FormatAmount(summary.TotalAmount))
	assert.Equal(t, "20.17", domain.FormatAmount(summary.AverageInvoiceAmount))
	assert.Equal(t, 1, summary.TotalItems)
	assert.Equal(t, 2, summary.TotalSuppliers)
	assert.Len(t, summary.RecentInvoices, 3)

	require.Len(t, summary.TopSuppliers, 2)
	assert.Equal(t, "Busy", summary.TopSuppliers[0].Supplier.Name)
	assert.Equal(t, 2, summary.TopSuppliers[0].InvoiceCount)
	assert.Equal(t, "50.50", domain.FormatAmount(summary.TopSuppliers[0].TotalAmount))
}

func TestSummaryCapsLists(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	item, err := f.items.CreateItem(ctx, domain.ItemInput{Name: "Widget", Price: "1.00"})
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		sup, err := f.suppliers.CreateSupplier(ctx, domain.SupplierInput{Name: fmt.Sprintf("S%d", i), Address: "A", Phone: "P"})
		require.NoError(t, err)
		_, err = f.invoices.CreateInvoice(ctx,
			domain.InvoiceInput{InvoiceNumber: fmt.Sprintf("INV-%d", i), Amount: "1.00", SupplierID: sup.ID},
			[]domain.InvoiceLineInput{{ItemID: item.ID, Quantity: 1}},
		)
		require.NoError(t, err)
	}

	summary, err := f.reports.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, summary.RecentInvoices, 5)
	assert.Len(t, summary.TopSuppliers, 5)
}

func TestSummaryEmptyStore(t *testing.T) {
	f := newFixture()

	summary, err := f.reports.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalInvoices)
	assert.True(t, summary.AverageInvoiceAmount.IsZero())
	assert.Empty(t, summary.TopSuppliers)
	assert.True(t, summary.AverageItemPrice.IsZero())
	assert.True(t, summary.HighestItemPrice.IsZero())
	assert.True(t, summary.LowestItemPrice.IsZero())
}

func TestSummaryItemPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for _, price := range []string{"5.00", "12.50", "0.99"} {
		_, err := f.items.CreateItem(ctx, domain.ItemInput{Name: "Part " + price, Price: price})
		require.NoError(t, err)
	}

	summary, err := f.reports.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, "6.16", domain.FormatAmount(summary.AverageItemPrice))
	assert.Equal(t, "12.50", domain.FormatAmount(summary.HighestItemPrice))
	assert.Equal(t, "0.99", domain.FormatAmount(summary.LowestItemPrice))
}
