package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tulipbilling/invoicing-api/internal/application/service"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/request"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/response"
)

// ExportHandler handles ledger download HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Invoices streams a filtered ledger extract
// @Summary Export Invoices
// @Description Download the filtered ledger as CSV or XLSX
// @Tags exports
// @Security BearerAuth
// @Produce text/csv
// @Success 200 {file} binary
// @Router /exports/invoices [get]
func (h *ExportHandler) Invoices(c *gin.Context) {
	var query request.LedgerFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}
	filter, err := parseLedgerFilter(&query)
	if err != nil {
		response.BadRequest(c, "Dates must be DD-MM-YYYY")
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	file, err := h.exportService.Export(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
