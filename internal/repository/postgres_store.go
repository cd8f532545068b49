package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ridwanfathin/supplier-invoice-service/internal/database"
	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
)

// querier is satisfied by both the connection pool and a transaction
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxConn is the part of a pgx pool the store uses
type PgxConn interface {
	querier
	database.TxBeginner
}

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	conn PgxConn
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new PostgreSQL-backed store
func NewPostgresStore(db *database.PostgresDB) *PostgresStore {
	return NewPostgresStoreWithConn(db.GetPool())
}

// NewPostgresStoreWithConn creates a store on an existing pool or connection
func NewPostgresStoreWithConn(conn PgxConn) *PostgresStore {
	return &PostgresStore{
		conn: conn,
	}
}

const (
	selectSuppliersSQL = `SELECT id, name, address, phone FROM suppliers ORDER BY seq`
	selectItemsSQL     = `SELECT id, name, price::text FROM items ORDER BY seq`
	selectInvoicesSQL  = `SELECT id, invoice_number, amount::text, supplier_id, created_at FROM invoices ORDER BY seq`
	selectLinesSQL     = `SELECT id, quantity, invoice_id, item_id FROM invoice_lines ORDER BY seq`
)

func scanSupplier(row pgx.Row) (domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone)
	return s, err
}

func scanItem(row pgx.Row) (domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.Name, &it.Price)
	return it, err
}

func scanInvoice(row pgx.Row) (domain.Invoice, error) {
	var inv domain.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.Amount, &inv.SupplierID, &inv.CreatedAt)
	return inv, err
}

func scanLine(row pgx.Row) (domain.InvoiceLine, error) {
	var l domain.InvoiceLine
	err := row.Scan(&l.ID, &l.Quantity, &l.InvoiceID, &l.ItemID)
	return l, err
}

func scanLineWithItem(row pgx.Row) (domain.InvoiceLineWithItem, error) {
	var l domain.InvoiceLineWithItem
	err := row.Scan(&l.ID, &l.Quantity, &l.InvoiceID, &l.ItemID, &l.Item.ID, &l.Item.Name, &l.Item.Price)
	return l, err
}

// queryAll runs a query and scans every row with scan
func queryAll[T any](ctx context.Context, q querier, sql string, scan func(pgx.Row) (T, error), args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// loadSnapshot reads all four collections and joins them in Go
func (r *PostgresStore) loadSnapshot(ctx context.Context) (snapshot, error) {
	var (
		snap snapshot
		err  error
	)
	q := r.conn

	if snap.suppliers, err = queryAll(ctx, q, selectSuppliersSQL, scanSupplier); err != nil {
		return snap, fmt.Errorf("failed to query suppliers: %w", err)
	}
	if snap.items, err = queryAll(ctx, q, selectItemsSQL, scanItem); err != nil {
		return snap, fmt.Errorf("failed to query items: %w", err)
	}
	if snap.invoices, err = queryAll(ctx, q, selectInvoicesSQL, scanInvoice); err != nil {
		return snap, fmt.Errorf("failed to query invoices: %w", err)
	}
	if snap.lines, err = queryAll(ctx, q, selectLinesSQL, scanLine); err != nil {
		return snap, fmt.Errorf("failed to query invoice lines: %w", err)
	}
	return snap, nil
}

// ListSuppliers returns every supplier joined with its invoices
func (r *PostgresStore) ListSuppliers(ctx context.Context) ([]domain.SupplierWithInvoices, error) {
	snap, err := r.loadSnapshot(ctx)
	if err != nil {
		return nil, &RepositoryError{Op: "list_suppliers", Err: err}
	}
	return newJoiner(snap).suppliersWithInvoices(), nil
}

// GetSupplier returns one supplier
func (r *PostgresStore) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	supplier, err := scanSupplier(r.conn.QueryRow(ctx, `
		SELECT id, name, address, phone FROM suppliers WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &RepositoryError{Op: "get_supplier", Err: err}
	}
	return &supplier, nil
}

// CreateSupplier persists a new supplier
func (r *PostgresStore) CreateSupplier(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error) {
	supplier, err := scanSupplier(r.conn.QueryRow(ctx, `
		INSERT INTO suppliers (id, name, address, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, address, phone
	`, uuid.NewString(), input.Name, input.Address, input.Phone))
	if err != nil {
		return nil, &RepositoryError{Op: "create_supplier", Err: err}
	}
	return &supplier, nil
}

// ListItems returns the catalog in insertion order
func (r *PostgresStore) ListItems(ctx context.Context) ([]domain.Item, error) {
	items, err := queryAll(ctx, r.conn, selectItemsSQL, scanItem)
	if err != nil {
		return nil, &RepositoryError{Op: "list_items", Err: err}
	}
	return items, nil
}

// GetItem returns one item
func (r *PostgresStore) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := scanItem(r.conn.QueryRow(ctx, `
		SELECT id, name, price::text FROM items WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &RepositoryError{Op: "get_item", Err: err}
	}
	return &item, nil
}

// FindItemByNameAndPrice returns the first exact catalog match
func (r *PostgresStore) FindItemByNameAndPrice(ctx context.Context, name, price string) (*domain.Item, error) {
	item, err := scanItem(r.conn.QueryRow(ctx, `
		SELECT id, name, price::text
		FROM items
		WHERE lower(name) = lower($1) AND price::text = $2
		ORDER BY seq
		LIMIT 1
	`, name, price))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &RepositoryError{Op: "find_item", Err: err}
	}
	return &item, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchItems returns items accepted by the filter
func (r *PostgresStore) SearchItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	var maxPrice any
	if filter.MaxPrice != nil {
		maxPrice = filter.MaxPrice.String()
	}

	items, err := queryAll(ctx, r.conn, `
		SELECT id, name, price::text
		FROM items
		WHERE name ILIKE '%' || $1::text || '%'
		  AND ($2::numeric IS NULL OR price <= $2::numeric)
		ORDER BY seq
	`, scanItem, likeEscaper.Replace(filter.Name), maxPrice)
	if err != nil {
		return nil, &RepositoryError{Op: "search_items", Err: err}
	}
	return items, nil
}

// CreateItem persists a new catalog item
func (r *PostgresStore) CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error) {
	item, err := scanItem(r.conn.QueryRow(ctx, `
		INSERT INTO items (id, name, price)
		VALUES ($1, $2, $3)
		RETURNING id, name, price::text
	`, uuid.NewString(), input.Name, input.Price))
	if err != nil {
		return nil, &RepositoryError{Op: "create_item", Err: err}
	}
	return &item, nil
}

// ListInvoices returns every invoice with a resolvable supplier
func (r *PostgresStore) ListInvoices(ctx context.Context) ([]domain.InvoiceWithLines, error) {
	snap, err := r.loadSnapshot(ctx)
	if err != nil {
		return nil, &RepositoryError{Op: "list_invoices", Err: err}
	}
	return newJoiner(snap).invoices(nil), nil
}

// GetInvoice returns one joined invoice
func (r *PostgresStore) GetInvoice(ctx context.Context, id string) (*domain.InvoiceWithLines, error) {
	var result domain.InvoiceWithLines
	err := r.conn.QueryRow(ctx, `
		SELECT i.id, i.invoice_number, i.amount::text, i.supplier_id, i.created_at,
		       s.id, s.name, s.address, s.phone
		FROM invoices i
		JOIN suppliers s ON s.id = i.supplier_id
		WHERE i.id = $1
	`, id).Scan(
		&result.ID, &result.InvoiceNumber, &result.Amount, &result.SupplierID, &result.CreatedAt,
		&result.Supplier.ID, &result.Supplier.Name, &result.Supplier.Address, &result.Supplier.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, &RepositoryError{Op: "get_invoice", Err: err}
	}

	lines, err := r.ListInvoiceLines(ctx, id)
	if err != nil {
		return nil, err
	}
	result.InvoiceLines = lines

	return &result, nil
}

func insertInvoice(ctx context.Context, q querier, input domain.InvoiceInput) (*domain.Invoice, error) {
	invoice, err := scanInvoice(q.QueryRow(ctx, `
		INSERT INTO invoices (id, invoice_number, amount, supplier_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, invoice_number, amount::text, supplier_id, created_at
	`, uuid.NewString(), input.InvoiceNumber, input.Amount, input.SupplierID))
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func insertInvoiceLine(ctx context.Context, q querier, input domain.InvoiceLineInput) (*domain.InvoiceLine, error) {
	line, err := scanLine(q.QueryRow(ctx, `
		INSERT INTO invoice_lines (id, quantity, invoice_id, item_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, quantity, invoice_id, item_id
	`, uuid.NewString(), input.Quantity, input.InvoiceID, input.ItemID))
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// CreateInvoice persists a bare invoice header
func (r *PostgresStore) CreateInvoice(ctx context.Context, input domain.InvoiceInput) (*domain.Invoice, error) {
	invoice, err := insertInvoice(ctx, r.conn, input)
	if err != nil {
		return nil, &RepositoryError{Op: "create_invoice", Err: err}
	}
	return invoice, nil
}

// CreateInvoiceLine persists a bare invoice line
func (r *PostgresStore) CreateInvoiceLine(ctx context.Context, input domain.InvoiceLineInput) (*domain.InvoiceLine, error) {
	line, err := insertInvoiceLine(ctx, r.conn, input)
	if err != nil {
		return nil, &RepositoryError{Op: "create_invoice_line", Err: err}
	}
	return line, nil
}

// ListInvoiceLines returns the joined lines of one invoice
func (r *PostgresStore) ListInvoiceLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLineWithItem, error) {
	lines, err := queryAll(ctx, r.conn, `
		SELECT l.id, l.quantity, l.invoice_id, l.item_id, it.id, it.name, it.price::text
		FROM invoice_lines l
		JOIN items it ON it.id = l.item_id
		WHERE l.invoice_id = $1
		ORDER BY l.seq
	`, scanLineWithItem, invoiceID)
	if err != nil {
		return nil, &RepositoryError{Op: "list_invoice_lines", Err: err}
	}
	return lines, nil
}

// CreateInvoiceWithLines inserts the invoice and all of its lines in a single
// transaction
func (r *PostgresStore) CreateInvoiceWithLines(ctx context.Context, input domain.InvoiceInput, lines []domain.InvoiceLineInput) (*domain.Invoice, []domain.InvoiceLine, error) {
	var (
		invoice *domain.Invoice
		created []domain.InvoiceLine
	)

	err := database.RunInTx(ctx, r.conn, func(tx pgx.Tx) error {
		var err error
		invoice, err = insertInvoice(ctx, tx, input)
		if err != nil {
			return fmt.Errorf("failed to insert invoice: %w", err)
		}

		created = make([]domain.InvoiceLine, 0, len(lines))
		for _, l := range lines {
			l.InvoiceID = invoice.ID
			line, err := insertInvoiceLine(ctx, tx, l)
			if err != nil {
				return fmt.Errorf("failed to insert invoice line: %w", err)
			}
			created = append(created, *line)
		}
		return nil
	})
	if err != nil {
		return nil, nil, &RepositoryError{Op: "create_invoice_with_lines", Err: err}
	}

	return invoice, created, nil
}
