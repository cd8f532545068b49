package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	itemColumns    = []string{"id", "name", "price"}
	invoiceColumns = []string{"id", "invoice_number", "amount", "supplier_id", "created_at"}
	lineColumns    = []string{"id", "quantity", "invoice_id", "item_id"}
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStoreWithConn(mock), mock
}

func sqlFragment(s string) string {
	return regexp.QuoteMeta(s)
}

func TestPostgresFindItemByNameAndPrice(t *testing.T) {
	query := sqlFragment("WHERE lower(name) = lower($1) AND price::text = $2")
	dbErr := errors.New("connection reset")

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    *domain.Item
		wantErr error
	}{
		{
			name: "first match",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(query).
					WithArgs("bolt", "0.50").
					WillReturnRows(pgxmock.NewRows(itemColumns).AddRow("item-1", "Bolt", "0.50"))
			},
			want: &domain.Item{ID: "item-1", Name: "Bolt", Price: "0.50"},
		},
		{
			name: "no match",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(query).
					WithArgs("bolt", "0.50").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "driver error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(query).
					WithArgs("bolt", "0.50").
					WillReturnError(dbErr)
			},
			wantErr: dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setup(mock)

			item, err := store.FindItemByNameAndPrice(context.Background(), "bolt", "0.50")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, item)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, item)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresFindItemWrapsDriverErrors(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(sqlFragment("FROM items")).
		WithArgs("bolt", "0.50").
		WillReturnError(errors.New("connection reset"))

	_, err := store.FindItemByNameAndPrice(context.Background(), "bolt", "0.50")

	var repoErr *RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "find_item", repoErr.Op)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestPostgresSearchItems(t *testing.T) {
	query := sqlFragment("WHERE name ILIKE '%' || $1::text || '%'")
	limit := decimal.RequireFromString("20")

	tests := []struct {
		name     string
		filter   domain.ItemFilter
		wantName string
		wantMax  any
	}{
		{name: "percent is literal", filter: domain.ItemFilter{Name: "50%"}, wantName: `50\%`, wantMax: nil},
		{name: "underscore is literal", filter: domain.ItemFilter{Name: "M_8"}, wantName: `M\_8`, wantMax: nil},
		{name: "backslash is literal", filter: domain.ItemFilter{Name: `a\b`}, wantName: `a\\b`, wantMax: nil},
		{name: "price bound", filter: domain.ItemFilter{Name: "bolt", MaxPrice: &limit}, wantName: "bolt", wantMax: "20"},
		{name: "empty filter", filter: domain.ItemFilter{}, wantName: "", wantMax: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			mock.ExpectQuery(query).
				WithArgs(tt.wantName, tt.wantMax).
				WillReturnRows(pgxmock.NewRows(itemColumns).
					AddRow("item-1", "50% off bolt", "10.00").
					AddRow("item-2", "Bolt M_8", "12.00"))

			items, err := store.SearchItems(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, "item-1", items[0].ID)
			assert.Equal(t, "12.00", items[1].Price)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresSearchItemsEmptyResultIsNotNil(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(sqlFragment("FROM items")).
		WithArgs("nothing", nil).
		WillReturnRows(pgxmock.NewRows(itemColumns))

	items, err := store.SearchItems(context.Background(), domain.ItemFilter{Name: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPostgresGetInvoiceNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(sqlFragment("JOIN suppliers s ON s.id = i.supplier_id")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	invoice, err := store.GetInvoice(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, invoice)
	assert.NoError(t, mock.ExpectationsWereMet(), "lines are not queried for a missing invoice")
}

func TestPostgresGetInvoiceJoinsLines(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(sqlFragment("JOIN suppliers s ON s.id = i.supplier_id")).
		WithArgs("inv-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "invoice_number", "amount", "supplier_id", "created_at",
			"s_id", "s_name", "s_address", "s_phone",
		}).AddRow("inv-1", "F-001", "750.00", "sup-1", created,
			"sup-1", "Atlas Bois", "7 Rue de Fes, Tanger", "+212600000000"))
	mock.ExpectQuery(sqlFragment("FROM invoice_lines l")).
		WithArgs("inv-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "quantity", "invoice_id", "item_id", "it_id", "it_name", "it_price",
		}).AddRow("line-1", 3, "inv-1", "item-1", "item-1", "Plank", "250.00"))

	invoice, err := store.GetInvoice(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, "F-001", invoice.InvoiceNumber)
	assert.Equal(t, created, invoice.CreatedAt)
	assert.Equal(t, "Atlas Bois", invoice.Supplier.Name)
	require.Len(t, invoice.InvoiceLines, 1)
	assert.Equal(t, 3, invoice.InvoiceLines[0].Quantity)
	assert.Equal(t, "Plank", invoice.InvoiceLines[0].Item.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateInvoiceWithLines(t *testing.T) {
	insertInvoiceSQL := sqlFragment("INSERT INTO invoices")
	insertLineSQL := sqlFragment("INSERT INTO invoice_lines")
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	input := domain.InvoiceInput{InvoiceNumber: "F-001", Amount: "750.00", SupplierID: "sup-1"}
	lines := []domain.InvoiceLineInput{
		{Quantity: 2, ItemID: "item-1"},
		{Quantity: 1, ItemID: "item-2"},
	}

	tests := []struct {
		name      string
		setup     func(mock pgxmock.PgxPoolIface)
		wantLines int
		wantErr   string
	}{
		{
			name: "commits header and lines",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(insertInvoiceSQL).
					WithArgs(pgxmock.AnyArg(), "F-001", "750.00", "sup-1").
					WillReturnRows(pgxmock.NewRows(invoiceColumns).AddRow("inv-1", "F-001", "750.00", "sup-1", created))
				mock.ExpectQuery(insertLineSQL).
					WithArgs(pgxmock.AnyArg(), 2, "inv-1", "item-1").
					WillReturnRows(pgxmock.NewRows(lineColumns).AddRow("line-1", 2, "inv-1", "item-1"))
				mock.ExpectQuery(insertLineSQL).
					WithArgs(pgxmock.AnyArg(), 1, "inv-1", "item-2").
					WillReturnRows(pgxmock.NewRows(lineColumns).AddRow("line-2", 1, "inv-1", "item-2"))
				mock.ExpectCommit()
			},
			wantLines: 2,
		},
		{
			name: "line failure rolls back",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(insertInvoiceSQL).
					WithArgs(pgxmock.AnyArg(), "F-001", "750.00", "sup-1").
					WillReturnRows(pgxmock.NewRows(invoiceColumns).AddRow("inv-1", "F-001", "750.00", "sup-1", created))
				mock.ExpectQuery(insertLineSQL).
					WithArgs(pgxmock.AnyArg(), 2, "inv-1", "item-1").
					WillReturnError(errors.New("violates foreign key constraint"))
				mock.ExpectRollback()
			},
			wantErr: "failed to insert invoice line",
		},
		{
			name: "header failure rolls back",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(insertInvoiceSQL).
					WithArgs(pgxmock.AnyArg(), "F-001", "750.00", "sup-1").
					WillReturnError(errors.New("duplicate key"))
				mock.ExpectRollback()
			},
			wantErr: "failed to insert invoice",
		},
		{
			name: "rollback failure is reported",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(insertInvoiceSQL).
					WithArgs(pgxmock.AnyArg(), "F-001", "750.00", "sup-1").
					WillReturnError(errors.New("duplicate key"))
				mock.ExpectRollback().WillReturnError(errors.New("conn closed"))
			},
			wantErr: "rollback error: conn closed",
		},
		{
			name: "begin failure",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))
			},
			wantErr: "failed to begin transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setup(mock)

			invoice, created, err := store.CreateInvoiceWithLines(context.Background(), input, lines)
			if tt.wantErr != "" {
				var repoErr *RepositoryError
				require.ErrorAs(t, err, &repoErr)
				assert.Equal(t, "create_invoice_with_lines", repoErr.Op)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, invoice)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "inv-1", invoice.ID)
				require.Len(t, created, tt.wantLines)
				assert.Equal(t, "line-2", created[1].ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresListSuppliersJoinsSnapshot(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(sqlFragment(selectSuppliersSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "address", "phone"}).
			AddRow("sup-1", "Atlas Bois", "7 Rue de Fes, Tanger", "+212600000000"))
	mock.ExpectQuery(sqlFragment(selectItemsSQL)).
		WillReturnRows(pgxmock.NewRows(itemColumns).AddRow("item-1", "Plank", "250.00"))
	mock.ExpectQuery(sqlFragment(selectInvoicesSQL)).
		WillReturnRows(pgxmock.NewRows(invoiceColumns).AddRow("inv-1", "F-001", "750.00", "sup-1", created))
	mock.ExpectQuery(sqlFragment(selectLinesSQL)).
		WillReturnRows(pgxmock.NewRows(lineColumns).AddRow("line-1", 3, "inv-1", "item-1"))

	suppliers, err := store.ListSuppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	require.Len(t, suppliers[0].Invoices, 1)
	assert.Equal(t, "F-001", suppliers[0].Invoices[0].InvoiceNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
