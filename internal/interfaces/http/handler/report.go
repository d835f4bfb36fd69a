package handler

import (
	"time"

	billingapp "github.com/boekhoud/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles period reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *billingapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *billingapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/vat-return", h.VATReturn)
	}
}

// VATReturn builds the VAT return for an inclusive date period
func (h *ReportHandler) VATReturn(c *gin.Context) {
	start, ok := h.parseDate(c, "start")
	if !ok {
		return
	}
	end, ok := h.parseDate(c, "end")
	if !ok {
		return
	}

	ret, err := h.reportService.VATReturn(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ret)
}

// parseDate parses a required YYYY-MM-DD query parameter
func (h *BaseHandler) parseDate(c *gin.Context, param string) (time.Time, bool) {
	raw := c.Query(param)
	if raw == "" {
		h.BadRequest(c, "Query parameter "+param+" is required")
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		h.BadRequest(c, "Query parameter "+param+" must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return d, true
}
