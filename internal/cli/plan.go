package cli

import (
	"fmt"
	"io"

	"github.com/ridwanfathin/supplier-invoice-service/internal/composer"
	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
)

// planView is the printable form of a submission plan
type planView struct {
	InvoiceNumber string         `json:"invoiceNumber"`
	SupplierID    string         `json:"supplierId"`
	Amount        string         `json:"amount"`
	Tax           string         `json:"tax"`
	Total         string         `json:"total"`
	NewItems      []plannedItem  `json:"newItems"`
	Lines         []plannedEntry `json:"lines"`
}

type plannedItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type plannedEntry struct {
	Quantity int    `json:"quantity"`
	ItemID   string `json:"itemId,omitempty"`
	NewItem  *int   `json:"newItem,omitempty"`
}

func newPlanView(plan *composer.Plan) planView {
	view := planView{
		InvoiceNumber: plan.Invoice.InvoiceNumber,
		SupplierID:    plan.Invoice.SupplierID,
		Amount:        plan.Invoice.Amount,
		Tax:           domain.FormatAmount(plan.Totals.Tax),
		Total:         domain.FormatAmount(plan.Totals.Total),
		NewItems:      make([]plannedItem, 0, len(plan.NewItems)),
		Lines:         make([]plannedEntry, 0, len(plan.Lines)),
	}
	for _, it := range plan.NewItems {
		view.NewItems = append(view.NewItems, plannedItem{Name: it.Name, Price: it.Price})
	}
	for _, l := range plan.Lines {
		entry := plannedEntry{Quantity: l.Quantity, ItemID: l.ItemID}
		if l.NewItem >= 0 {
			idx := l.NewItem
			entry.NewItem = &idx
		}
		view.Lines = append(view.Lines, entry)
	}
	return view
}

func printPlan(view planView) func(io.Writer) error {
	return func(w io.Writer) error {
		fmt.Fprintf(w, "Invoice\t%s\n", view.InvoiceNumber)
		fmt.Fprintf(w, "Supplier\t%s\n", view.SupplierID)
		fmt.Fprintln(w)

		fmt.Fprintln(w, "QTY\tITEM")
		for _, l := range view.Lines {
			target := l.ItemID
			if l.NewItem != nil {
				it := view.NewItems[*l.NewItem]
				target = fmt.Sprintf("new: %s at %s", it.Name, it.Price)
			}
			fmt.Fprintf(w, "%d\t%s\n", l.Quantity, target)
		}
		fmt.Fprintln(w)

		fmt.Fprintf(w, "Amount\t%s\n", view.Amount)
		fmt.Fprintf(w, "Tax\t%s\n", view.Tax)
		fmt.Fprintf(w, "Total\t%s\n", view.Total)
		fmt.Fprintf(w, "New items\t%d\n", len(view.NewItems))
		return nil
	}
}
