package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/supplier-invoice-service/internal/model"
	"github.com/ridwanfathin/supplier-invoice-service/internal/service"
)

// ReportHandler serves aggregate figures
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers the report routes on the API group
func (h *ReportHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/reports/summary", h.GetSummary)
}

// GetSummary handles the GET /reports/summary endpoint
// @Summary Ledger summary
// @Description Totals, averages, the five most recent invoices and the five suppliers with the most invoices
// @Tags reports
// @Produce json
// @Success 200 {object} model.ReportSummaryResponse
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /api/reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.reportService.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, "failed_to_build_summary", err, "")
		return
	}
	respondOK(c, model.NewReportSummaryResponse(summary))
}
