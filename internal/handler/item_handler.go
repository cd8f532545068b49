package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/supplier-invoice-service/internal/domain"
	"github.com/ridwanfathin/supplier-invoice-service/internal/metrics"
	"github.com/ridwanfathin/supplier-invoice-service/internal/model"
	"github.com/ridwanfathin/supplier-invoice-service/internal/service"
)

// ItemHandler handles HTTP requests for the item catalog
type ItemHandler struct {
	itemService service.ItemService
	metrics     *metrics.Metrics
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService service.ItemService, m *metrics.Metrics) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		metrics:     m,
	}
}

// RegisterRoutes registers the item routes on the API group
func (h *ItemHandler) RegisterRoutes(api *gin.RouterGroup) {
	items := api.Group("/items")
	{
		items.GET("", h.ListItems)
		items.GET("/search", h.SearchItems)
		items.GET("/lookup", h.LookupItem)
		items.POST("", h.CreateItem)
	}
}

// ListItems handles the GET /items endpoint
// @Summary List catalog items
// @Tags items
// @Produce json
// @Success 200 {array} domain.Item
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/items [get]
func (h *ItemHandler) ListItems(c *gin.Context) {
	items, err := h.itemService.ListItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, "failed_to_list_items", err, "")
		return
	}
	respondOK(c, items)
}

// SearchItems handles the GET /items/search endpoint
// @Summary Search catalog items
// @Description Items whose name contains the given text (case-insensitive) and whose price is at most the given bound
// @Tags items
// @Produce json
// @Param name query string false "Name fragment"
// @Param price query string false "Maximum price"
// @Success 200 {array} domain.Item
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/items/search [get]
func (h *ItemHandler) SearchItems(c *gin.Context) {
	bound, err := parsePriceBound(getQueryString(c, "price"))
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("price", err.Error()))
		return
	}

	items, err := h.itemService.SearchItems(c.Request.Context(), domain.ItemFilter{
		Name:     getQueryString(c, "name"),
		MaxPrice: bound,
	})
	if err != nil {
		respondServiceError(c, "failed_to_search_items", err, "")
		return
	}
	respondOK(c, items)
}

// LookupItem handles the GET /items/lookup endpoint
// @Summary Find an item by exact name and price
// @Description First item whose name matches case-insensitively and whose price text matches exactly
// @Tags items
// @Produce json
// @Param name query string true "Item name"
// @Param price query string true "Exact price text"
// @Success 200 {object} domain.Item
// @Failure 400 {object} model.ErrorResponse "Missing query parameters"
// @Failure 404 {object} model.ErrorResponse "No matching item"
// @Router /api/items/lookup [get]
func (h *ItemHandler) LookupItem(c *gin.Context) {
	name := c.Query("name")
	price := c.Query("price")

	var details []model.ErrorDetail
	details = requireText(details, "name", "name", name)
	details = requireText(details, "price", "price", price)
	if len(details) > 0 {
		respondBadRequest(c, ErrInvalidQueryParams, details...)
		return
	}

	item, err := h.itemService.FindItem(c.Request.Context(), name, price)
	if err != nil {
		respondServiceError(c, "failed_to_lookup_item", err, "Item not found")
		return
	}
	respondOK(c, item)
}

// CreateItem handles the POST /items endpoint
// @Summary Create a catalog item
// @Description Duplicate name and price pairs are accepted
// @Tags items
// @Accept json
// @Produce json
// @Param item body model.CreateItemRequest true "Item data"
// @Success 201 {object} domain.Item
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var input model.CreateItemRequest
	details, err := bindJSON(c, &input)
	if err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}
	details = mergeDetails(details, validateItemInput(input))
	if len(details) > 0 {
		respondBadRequest(c, ErrInvalidInput, details...)
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), domain.ItemInput{
		Name:  input.Name,
		Price: input.Price.String(),
	})
	if err != nil {
		respondServiceError(c, "failed_to_create_item", err, "")
		return
	}

	h.metrics.RecordCreated("item")
	respondCreated(c, item)
}

func validateItemInput(input model.CreateItemRequest) []model.ErrorDetail {
	var details []model.ErrorDetail
	details = requireText(details, "name", "Name", input.Name)
	if input.Price == "" {
		return append(details, newErrorDetail("price", "Price is required"))
	}
	return checkAmount(details, "price", "Price", input.Price.String(), false)
}
