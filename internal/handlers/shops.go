// internal/handlers/shops.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurgarden/ngms-backend/internal/services"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type ShopHandler struct {
	shopService *services.ShopService
}

func NewShopHandler(shopService *services.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// List handles GET /api/shops
func (h *ShopHandler) List(c *gin.Context) {
	var regionID *uuid.UUID
	if raw := c.Query("region_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.BadRequestResponse(c, "invalid region_id", nil)
			return
		}
		regionID = &id
	}

	shops, err := h.shopService.List(regionID, c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, shops)
}

// Get handles GET /api/shops/:id
func (h *ShopHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shop, err := h.shopService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, shop)
}

// Create handles POST /api/shops
func (h *ShopHandler) Create(c *gin.Context) {
	var req services.ShopCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	shop, err := h.shopService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, shop)
}

// Update handles PUT /api/shops/:id
func (h *ShopHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.ShopUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	shop, err := h.shopService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, shop)
}

// Delete handles DELETE /api/shops/:id
func (h *ShopHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.shopService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

type assortmentRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// SetAssortment handles PUT /api/shops/:id/products
func (h *ShopHandler) SetAssortment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req assortmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	shop, err := h.shopService.SetAssortment(id, req.ProductIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, shop)
}

// MapData handles GET /api/shops/map-data
func (h *ShopHandler) MapData(c *gin.Context) {
	shops, err := h.shopService.MapData()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, shops)
}
