package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/metrics"
	"github.com/ridwanfathin/supplier-invoice-service/internal/model"
	"github.com/ridwanfathin/supplier-invoice-service/internal/service"
)

// SupplierHandler handles HTTP requests for suppliers
type SupplierHandler struct {
	supplierService service.SupplierService
	metrics         *metrics.Metrics
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService service.SupplierService, m *metrics.Metrics) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
		metrics:         m,
	}
}

// RegisterRoutes registers the supplier routes on the API group
func (h *SupplierHandler) RegisterRoutes(api *gin.RouterGroup) {
	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("", h.ListSuppliers)
		suppliers.POST("", h.CreateSupplier)
	}
}

// ListSuppliers handles the GET /suppliers endpoint
// @Summary List suppliers
// @Description Every supplier with its invoices, each invoice with its lines and items
// @Tags suppliers
// @Produce json
// @Success 200 {array} domain.SupplierWithInvoices
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/suppliers [get]
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context())
	if err != nil {
		respondServiceError(c, "failed_to_list_suppliers", err, "")
		return
	}
	respondOK(c, suppliers)
}

// CreateSupplier handles the POST /suppliers endpoint
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param supplier body model.CreateSupplierRequest true "Supplier data"
// @Success 201 {object} domain.Supplier
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/suppliers [post]
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var input model.CreateSupplierRequest
	details, err := bindJSON(c, &input)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}
	details = mergeDetails(details, validateSupplierInput(input))
	if len(details) > 0 {
		respondBadRequest(c, ErrInvalidInput, details...)
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), domain.SupplierInput{
		Name:    input.Name,
		Address: input.Address,
		Phone:   input.Phone,
	})
	if err != nil {
		respondServiceError(c, "failed_to_create_supplier", err, "")
		return
	}

	h.metrics.RecordCreated("supplier")
	respondCreated(c, supplier)
}

// validateSupplierInput rejects whitespace-only fields
func validateSupplierInput(input model.CreateSupplierRequest) []model.ErrorDetail {
	var details []model.ErrorDetail
	details = requireText(details, "name", "Name", input.Name)
	details = requireText(details, "address", "Address", input.Address)
	details = requireText(details, "phone", "Phone", input.Phone)
	return details
}
