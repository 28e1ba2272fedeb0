// internal/handlers/regions.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nurgarden/ngms-backend/internal/services"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type RegionHandler struct {
	regionService *services.RegionService
}

func NewRegionHandler(regionService *services.RegionService) *RegionHandler {
	return &RegionHandler{regionService: regionService}
}

// List handles GET /api/regions
func (h *RegionHandler) List(c *gin.Context) {
	regions, err := h.regionService.List(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, regions)
}

// Get handles GET /api/regions/:id
func (h *RegionHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	region, err := h.regionService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, region)
}

// Create handles POST /api/regions
func (h *RegionHandler) Create(c *gin.Context) {
	var req services.RegionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	region, err := h.regionService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, region)
}

// Update handles PUT /api/regions/:id
func (h *RegionHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.RegionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	region, err := h.regionService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, region)
}

// Delete handles DELETE /api/regions/:id
func (h *RegionHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.regionService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// MapData handles GET /api/regions/map-data
func (h *RegionHandler) MapData(c *gin.Context) {
	regions, err := h.regionService.MapData()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, regions)
}

// Occupied handles GET /api/regions/occupied
func (h *RegionHandler) Occupied(c *gin.Context) {
	regions, err := h.regionService.Occupied()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, regions)
}
