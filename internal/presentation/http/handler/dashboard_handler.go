package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tulipbilling/invoicing-api/internal/application/service"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/request"
	"github.com/tulipbilling/invoicing-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles analytics HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles the sales dashboard
// @Summary Dashboard
// @Description Aggregated sales figures over the active ledger
// @Tags dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
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

	dashboard, err := h.dashboardService.Build(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}
