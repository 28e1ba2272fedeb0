// internal/handlers/sales.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurgarden/ngms-backend/internal/services"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type SaleHandler struct {
	saleService      *services.SaleService
	dashboardService *services.DashboardService
}

func NewSaleHandler(saleService *services.SaleService, dashboardService *services.DashboardService) *SaleHandler {
	return &SaleHandler{saleService: saleService, dashboardService: dashboardService}
}

// List handles GET /api/sales
func (h *SaleHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := services.SaleListFilter{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid customer_id", nil)
			return
		}
		filter.CustomerID = &id
	}
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid product_id", nil)
			return
		}
		filter.ProductID = &id
	}

	result, err := h.saleService.List(params, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, result.Data, result)
}

// Get handles GET /api/sales/:id
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, sale)
}

// Create handles POST /api/sales
func (h *SaleHandler) Create(c *gin.Context) {
	var req services.SaleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	sale, err := h.saleService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboardService.InvalidateStats(c.Request.Context())
	utils.CreatedResponse(c, sale)
}

// Update handles PUT /api/sales/:id
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SaleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	sale, err := h.saleService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboardService.InvalidateStats(c.Request.Context())
	utils.SuccessResponse(c, sale)
}

// Delete handles DELETE /api/sales/:id
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboardService.InvalidateStats(c.Request.Context())
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

type bulkImportRequest struct {
	Sales []services.SaleCreateRequest `json:"sales" validate:"required,min=1"`
}

// BulkImport handles POST /api/sales/bulk-import
func (h *SaleHandler) BulkImport(c *gin.Context) {
	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	result, err := h.saleService.BulkImport(req.Sales)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.dashboardService.InvalidateStats(c.Request.Context())
	utils.CreatedResponse(c, result)
}

// Statistics handles GET /api/sales/statistics
func (h *SaleHandler) Statistics(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	stats, err := h.saleService.Statistics(period)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// CreateOnline handles POST /api/sales/online
func (h *SaleHandler) CreateOnline(c *gin.Context) {
	var req services.OnlineSaleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	sale, err := h.saleService.CreateOnlineSale(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, sale)
}

// ListOnline handles GET /api/sales/online
func (h *SaleHandler) ListOnline(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	platform := c.Query("platform")

	result, err := h.saleService.ListOnlineSales(params, platform)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, result.Data, result)
}
