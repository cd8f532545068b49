package domain

// Supplier represents a vendor that issues invoices
type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// SupplierInput holds the fields required to create a supplier
type SupplierInput struct {
	Name    string
	Address string
	Phone   string
}

// SupplierWithInvoices is a supplier joined with every invoice it owns
type SupplierWithInvoices struct {
	Supplier
	Invoices []InvoiceWithLines `json:"invoices"`
}
