package composer

import (
	"context"
	"fmt"

	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
)

// Submission phases
const (
	PhaseCreateItems   = "create_items"
	PhaseCreateInvoice = "create_invoice"
)

// Backend is what a submission needs from the API
type Backend interface {
	CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error)
	CreateInvoice(ctx context.Context, invoice domain.InvoiceInput, lines []domain.InvoiceLineInput) (*domain.InvoiceWithLines, error)
}

// SubmitError reports a failed submission. Items created before the failure
// are not removed; their ids are listed in OrphanItemIDs.
type SubmitError struct {
	Phase         string
	OrphanItemIDs []string
	Err           error
}

func (e *SubmitError) Error() string {
	if len(e.OrphanItemIDs) > 0 {
		return fmt.Sprintf("%s: %v (%d orphaned items)", e.Phase, e.Err, len(e.OrphanItemIDs))
	}
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// Submit runs the two-phase submission: every new item is created first,
// then the invoice is created with all lines pointing at resolved item ids.
// The sequence is not atomic.
func Submit(ctx context.Context, backend Backend, plan *Plan) (*domain.InvoiceWithLines, error) {
	created := make([]string, 0, len(plan.NewItems))
	for _, input := range plan.NewItems {
		item, err := backend.CreateItem(ctx, input)
		if err != nil {
			return nil, &SubmitError{Phase: PhaseCreateItems, OrphanItemIDs: created, Err: err}
		}
		created = append(created, item.ID)
	}

	lines := make([]domain.InvoiceLineInput, 0, len(plan.Lines))
	for _, planned := range plan.Lines {
		itemID := planned.ItemID
		if planned.NewItem >= 0 {
			itemID = created[planned.NewItem]
		}
		lines = append(lines, domain.InvoiceLineInput{ItemID: itemID, Quantity: planned.Quantity})
	}

	invoice, err := backend.CreateInvoice(ctx, plan.Invoice, lines)
	if err != nil {
		return nil, &SubmitError{Phase: PhaseCreateInvoice, OrphanItemIDs: created, Err: err}
	}
	return invoice, nil
}
