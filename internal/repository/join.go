package repository

import "github.com/ridwanfathin/supplier-invoice-service/internal/domain"

// snapshot is a copy of the four collections in insertion order
type snapshot struct {
	suppliers []domain.Supplier
	items     []domain.Item
	invoices  []domain.Invoice
	lines     []domain.InvoiceLine
}

// joiner assembles enriched views from a snapshot
type joiner struct {
	snap           snapshot
	suppliers      map[string]domain.Supplier
	items          map[string]domain.Item
	linesByInvoice map[string][]domain.InvoiceLine
}

func newJoiner(snap snapshot) *joiner {
	j := &joiner{
		snap:           snap,
		suppliers:      make(map[string]domain.Supplier, len(snap.suppliers)),
		items:          make(map[string]domain.Item, len(snap.items)),
		linesByInvoice: make(map[string][]domain.InvoiceLine),
	}
	for _, s := range snap.suppliers {
		j.suppliers[s.ID] = s
	}
	for _, it := range snap.items {
		j.items[it.ID] = it
	}
	for _, l := range snap.lines {
		j.linesByInvoice[l.InvoiceID] = append(j.linesByInvoice[l.InvoiceID], l)
	}
	return j
}

// lines joins the lines of an invoice with their items, dropping lines whose
// item does not resolve
func (j *joiner) lines(invoiceID string) []domain.InvoiceLineWithItem {
	raw := j.linesByInvoice[invoiceID]
	result := make([]domain.InvoiceLineWithItem, 0, len(raw))
	for _, l := range raw {
		item, ok := j.items[l.ItemID]
		if !ok {
			continue
		}
		result = append(result, domain.InvoiceLineWithItem{InvoiceLine: l, Item: item})
	}
	return result
}

// invoice enriches one invoice; ok is false when its supplier does not resolve
func (j *joiner) invoice(inv domain.Invoice) (domain.InvoiceWithLines, bool) {
	supplier, ok := j.suppliers[inv.SupplierID]
	if !ok {
		return domain.InvoiceWithLines{}, false
	}
	return domain.InvoiceWithLines{
		Invoice:      inv,
		Supplier:     supplier,
		InvoiceLines: j.lines(inv.ID),
	}, true
}

// invoices enriches every invoice accepted by keep, in insertion order
func (j *joiner) invoices(keep func(domain.Invoice) bool) []domain.InvoiceWithLines {
	result := make([]domain.InvoiceWithLines, 0, len(j.snap.invoices))
	for _, inv := range j.snap.invoices {
		if keep != nil && !keep(inv) {
			continue
		}
		if enriched, ok := j.invoice(inv); ok {
			result = append(result, enriched)
		}
	}
	return result
}

// suppliersWithInvoices attaches each supplier's invoices
func (j *joiner) suppliersWithInvoices() []domain.SupplierWithInvoices {
	bySupplier := make(map[string][]domain.InvoiceWithLines)
	for _, inv := range j.invoices(nil) {
		bySupplier[inv.SupplierID] = append(bySupplier[inv.SupplierID], inv)
	}

	result := make([]domain.SupplierWithInvoices, 0, len(j.snap.suppliers))
	for _, s := range j.snap.suppliers {
		invoices := bySupplier[s.ID]
		if invoices == nil {
			invoices = []domain.InvoiceWithLines{}
		}
		result = append(result, domain.SupplierWithInvoices{Supplier: s, Invoices: invoices})
	}
	return result
}
