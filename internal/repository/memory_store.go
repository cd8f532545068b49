package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
)

// MemoryStore implements Store with process-local maps. Each operation is
// atomic on its own; CreateInvoiceWithLines is not, see its doc.
type MemoryStore struct {
	mutex sync.RWMutex
	now   func() time.Time
	newID func() string

	suppliers   []domain.Supplier
	supplierIdx map[string]int
	items       []domain.Item
	itemIdx     map[string]int
	invoices    []domain.Invoice
	invoiceIdx  map[string]int
	lines       []domain.InvoiceLine
}

var _ Store = (*MemoryStore)(nil)

// MemoryOption configures a MemoryStore
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source used for invoice creation timestamps
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// WithIDGenerator overrides the identifier generator
func WithIDGenerator(newID func() string) MemoryOption {
	return func(s *MemoryStore) {
		s.newID = newID
	}
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
		supplierIdx: make(map[string]int),
		itemIdx:     make(map[string]int),
		invoiceIdx:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func checkContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return &RepositoryError{Op: op, Err: ctx.Err()}
	default:
		return nil
	}
}

// snapshotLocked copies the collections; the caller must hold the read lock
func (s *MemoryStore) snapshotLocked() snapshot {
	return snapshot{
		suppliers: append([]domain.Supplier(nil), s.suppliers...),
		items:     append([]domain.Item(nil), s.items...),
		invoices:  append([]domain.Invoice(nil), s.invoices...),
		lines:     append([]domain.InvoiceLine(nil), s.lines...),
	}
}

func (s *MemoryStore) joined() *joiner {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return newJoiner(s.snapshotLocked())
}

// ListSuppliers returns every supplier joined with its invoices
func (s *MemoryStore) ListSuppliers(ctx context.Context) ([]domain.SupplierWithInvoices, error) {
	if err := checkContext(ctx, "list_suppliers"); err != nil {
		return nil, err
	}
	return s.joined().suppliersWithInvoices(), nil
}

// GetSupplier returns one supplier
func (s *MemoryStore) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	if err := checkContext(ctx, "get_supplier"); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	idx, ok := s.supplierIdx[id]
	if !ok {
		return nil, ErrNotFound
	}
	supplier := s.suppliers[idx]
	return &supplier, nil
}

// CreateSupplier persists a new supplier
func (s *MemoryStore) CreateSupplier(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error) {
	if err := checkContext(ctx, "create_supplier"); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	supplier := domain.Supplier{
		ID:      s.newID(),
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
	}
	s.supplierIdx[supplier.ID] = len(s.suppliers)
	s.suppliers = append(s.suppliers, supplier)
	return &supplier, nil
}

// ListItems returns the catalog in insertion order
func (s *MemoryStore) ListItems(ctx context.Context) ([]domain.Item, error) {
	if err := checkContext(ctx, "list_items"); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return append([]domain.Item{}, s.items...), nil
}

// GetItem returns one item
func (s *MemoryStore) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	if err := checkContext(ctx, "get_item"); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	idx, ok := s.itemIdx[id]
	if !ok {
		return nil, ErrNotFound
	}
	item := s.items[idx]
	return &item, nil
}

// FindItemByNameAndPrice returns the first exact catalog match
func (s *MemoryStore) FindItemByNameAndPrice(ctx context.Context, name, price string) (*domain.Item, error) {
	if err := checkContext(ctx, "find_item"); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, item := range s.items {
		if item.Matches(name, price) {
			found := item
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// SearchItems returns items accepted by the filter
func (s *MemoryStore) SearchItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	if err := checkContext(ctx, "search_items"); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := []domain.Item{}
	for _, item := range s.items {
		if filter.Accepts(item) {
			result = append(result, item)
		}
	}
	return result, nil
}

// CreateItem persists a new catalog item
func (s *MemoryStore) CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error) {
	if err := checkContext(ctx, "create_item"); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	item := domain.Item{
		ID:    s.newID(),
		Name:  input.Name,
		Price: input.Price,
	}
	s.itemIdx[item.ID] = len(s.items)
	s.items = append(s.items, item)
	return &item, nil
}

// ListInvoices returns every invoice with a resolvable supplier
func (s *MemoryStore) ListInvoices(ctx context.Context) ([]domain.InvoiceWithLines, error) {
	if err := checkContext(ctx, "list_invoices"); err != nil {
		return nil, err
	}
	return s.joined().invoices(nil), nil
}

// GetInvoice returns one joined invoice
func (s *MemoryStore) GetInvoice(ctx context.Context, id string) (*domain.InvoiceWithLines, error) {
	if err := checkContext(ctx, "get_invoice"); err != nil {
		return nil, err
	}

	s.mutex.RLock()
	idx, ok := s.invoiceIdx[id]
	var inv domain.Invoice
	if ok {
		inv = s.invoices[idx]
	}
	s.mutex.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	enriched, ok := s.joined().invoice(inv)
	if !ok {
		return nil, ErrNotFound
	}
	return &enriched, nil
}

// CreateInvoice persists a bare invoice header
func (s *MemoryStore) CreateInvoice(ctx context.Context, input domain.InvoiceInput) (*domain.Invoice, error) {
	if err := checkContext(ctx, "create_invoice"); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	invoice := domain.Invoice{
		ID:            s.newID(),
		InvoiceNumber: input.InvoiceNumber,
		Amount:        input.Amount,
		SupplierID:    input.SupplierID,
		CreatedAt:     s.now(),
	}
	s.invoiceIdx[invoice.ID] = len(s.invoices)
	s.invoices = append(s.invoices, invoice)
	return &invoice, nil
}

// CreateInvoiceLine persists a bare invoice line
func (s *MemoryStore) CreateInvoiceLine(ctx context.Context, input domain.InvoiceLineInput) (*domain.InvoiceLine, error) {
	if err := checkContext(ctx, "create_invoice_line"); err != nil {
		return nil, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	line := domain.InvoiceLine{
		ID:        s.newID(),
		Quantity:  input.Quantity,
		InvoiceID: input.InvoiceID,
		ItemID:    input.ItemID,
	}
	s.lines = append(s.lines, line)
	return &line, nil
}

// ListInvoiceLines returns the joined lines of one invoice
func (s *MemoryStore) ListInvoiceLines(ctx context.Context, invoiceID string) ([]domain.InvoiceLineWithItem, error) {
	if err := checkContext(ctx, "list_invoice_lines"); err != nil {
		return nil, err
	}
	return s.joined().lines(invoiceID), nil
}

// CreateInvoiceWithLines creates the invoice and then each line as separate
// operations. A failure part way leaves the invoice with the lines created so
// far; nothing is rolled back.
func (s *MemoryStore) CreateInvoiceWithLines(ctx context.Context, input domain.InvoiceInput, lines []domain.InvoiceLineInput) (*domain.Invoice, []domain.InvoiceLine, error) {
	invoice, err := s.CreateInvoice(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	created := make([]domain.InvoiceLine, 0, len(lines))
	for _, l := range lines {
		l.InvoiceID = invoice.ID
		line, err := s.CreateInvoiceLine(ctx, l)
		if err != nil {
			return invoice, created, err
		}
		created = append(created, *line)
	}
	return invoice, created, nil
}
