// internal/handlers/dashboard.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nurgarden/ngms-backend/internal/services"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

// DashboardHandler serves the read-only aggregates. Every endpoint here
// answers 200: the service degrades to zero/empty shapes internally when an
// aggregation query fails.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats := h.dashboardService.Stats(c.Request.Context())
	utils.SuccessResponse(c, stats)
}

// Growth handles GET /api/dashboard/growth-dynamics. A year query selects
// that calendar year, period=all covers everything since the first sale.
func (h *DashboardHandler) Growth(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	period := c.Query("period")
	utils.SuccessResponse(c, h.dashboardService.Growth(year, period))
}

// TopProducts handles GET /api/dashboard/top-products
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	utils.SuccessResponse(c, h.dashboardService.TopProducts(limit))
}

// TopCustomers handles GET /api/dashboard/top-customers
func (h *DashboardHandler) TopCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	utils.SuccessResponse(c, h.dashboardService.TopCustomers(limit))
}

// TopShops handles GET /api/shops/analysis/top-shops
func (h *DashboardHandler) TopShops(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	utils.SuccessResponse(c, h.dashboardService.TopShops(limit))
}

// TopRegions handles GET /api/shops/analysis/top-regions
func (h *DashboardHandler) TopRegions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	utils.SuccessResponse(c, h.dashboardService.TopRegions(limit))
}

// Monthly handles GET /api/dashboard/monthly-stats
func (h *DashboardHandler) Monthly(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	utils.SuccessResponse(c, h.dashboardService.Monthly(year, month))
}

// Detailed handles GET /api/dashboard/detailed-stats
func (h *DashboardHandler) Detailed(c *gin.Context) {
	utils.SuccessResponse(c, h.dashboardService.Detailed())
}
