// internal/handlers/goals.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nurgarden/ngms-backend/internal/services"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// List handles GET /api/goals
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.goalService.List(c.Query("status"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, goals)
}

// Get handles GET /api/goals/:id
func (h *GoalHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	goal, err := h.goalService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, goal)
}

// Create handles POST /api/goals
func (h *GoalHandler) Create(c *gin.Context) {
	var req services.GoalCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	goal, err := h.goalService.Create(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, goal)
}

// Update handles PUT /api/goals/:id
func (h *GoalHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.GoalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	goal, err := h.goalService.Update(id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, goal)
}

// Delete handles DELETE /api/goals/:id
func (h *GoalHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.goalService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}

// AddPlan handles POST /api/goals/:id/plans
func (h *GoalHandler) AddPlan(c *gin.Context) {
	goalID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.PlanCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	plan, err := h.goalService.AddPlan(goalID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.CreatedResponse(c, plan)
}

// UpdatePlan handles PUT /api/plans/:id
func (h *GoalHandler) UpdatePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.PlanUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	plan, err := h.goalService.UpdatePlan(planID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, plan)
}

// DeletePlan handles DELETE /api/plans/:id
func (h *GoalHandler) DeletePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.goalService.DeletePlan(planID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"deleted": true})
}
