package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/supplier-invoice-service/internal/metrics"
	"github.com/ridwanfathin/supplier-invoice-service/internal/model"
	"github.com/ridwanfathin/supplier-invoice-service/internal/service"
)

// InvoiceHandler handles HTTP requests for invoices
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	metrics        *metrics.Metrics
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService, m *metrics.Metrics) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		metrics:        m,
	}
}

// RegisterRoutes registers the invoice routes on the API group
func (h *InvoiceHandler) RegisterRoutes(api *gin.RouterGroup) {
	invoices := api.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:invoiceId", h.GetInvoice)
		invoices.POST("", h.CreateInvoice)
	}
}

// ListInvoices handles the GET /invoices endpoint
// @Summary List invoices
// @Description Every invoice with its supplier and lines. Invoices whose supplier is missing are left out.
// @Tags invoices
// @Produce json
// @Success 200 {array} domain.InvoiceWithLines
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		respondServiceError(c, "failed_to_list_invoices", err, "")
		return
	}
	respondOK(c, invoices)
}

// GetInvoice handles the GET /invoices/{invoiceId} endpoint
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param invoiceId path string true "Invoice ID"
// @Success 200 {object} domain.InvoiceWithLines
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/invoices/{invoiceId} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID, err := getPathParam(c, "invoiceId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, "failed_to_get_invoice", err, fmt.Sprintf("Invoice not found: %s", invoiceID))
		return
	}
	respondOK(c, invoice)
}

// CreateInvoice handles the POST /invoices endpoint
// @Summary Create an invoice with its lines
// @Description The amount is stored as given. Lines must reference existing items.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body model.CreateInvoiceRequest true "Invoice header and lines"
// @Success 201 {object} domain.InvoiceWithLines
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var input model.CreateInvoiceRequest
	details, err := bindJSON(c, &input)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}
	details = mergeDetails(details, validateInvoiceInput(input))
	if len(details) > 0 {
		respondBadRequest(c, ErrInvalidInput, details...)
		return
	}

	header, lines := input.ToInputs()
	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), header, lines)
	if err != nil {
		respondServiceError(c, "failed_to_create_invoice", err, "")
		return
	}

	h.metrics.RecordCreated("invoice")
	respondCreated(c, invoice)
}

// validateInvoiceInput collects every problem with the header and lines
func validateInvoiceInput(input model.CreateInvoiceRequest) []model.ErrorDetail {
	var details []model.ErrorDetail

	details = requireText(details, "invoice.invoiceNumber", "Invoice number", input.Invoice.InvoiceNumber)
	details = requireText(details, "invoice.supplierId", "Supplier", input.Invoice.SupplierID)
	if input.Invoice.Amount == "" {
		details = append(details, newErrorDetail("invoice.amount", "Amount is required"))
	} else {
		details = checkAmount(details, "invoice.amount", "Amount", input.Invoice.Amount.String(), true)
	}

	if len(input.InvoiceLines) == 0 {
		details = append(details, newErrorDetail("invoiceLines", "At least one invoice line is required"))
	}
	for i, line := range input.InvoiceLines {
		details = requireText(details, fmt.Sprintf("invoiceLines[%d].itemId", i), "Item", line.ItemID)
		if line.Quantity <= 0 {
			details = append(details, newErrorDetail(
				fmt.Sprintf("invoiceLines[%d].quantity", i),
				"Quantity must be greater than zero",
			))
		}
	}

	return details
}
