// internal/handlers/ai.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurgarden/ngms-backend/internal/services"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type AIHandler struct {
	aiService *services.AIService
}

func NewAIHandler(aiService *services.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

func respondAdvisorError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrAdvisorUnavailable) {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "AI_UNAVAILABLE", err.Error(), nil)
		return
	}
	utils.InternalErrorResponse(c, "advisor request failed")
}

type askRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
}

// Ask handles POST /api/ai/ask
func (h *AIHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	answer, err := h.aiService.Ask(c.Request.Context(), req.Question)
	if err != nil {
		respondAdvisorError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"answer": answer})
}

// Report handles GET /api/ai/report
func (h *AIHandler) Report(c *gin.Context) {
	report, err := h.aiService.Report(c.Request.Context())
	if err != nil {
		respondAdvisorError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"report": report})
}

// Recommendations handles GET /api/ai/recommendations
func (h *AIHandler) Recommendations(c *gin.Context) {
	recommendations, err := h.aiService.Recommendations(c.Request.Context())
	if err != nil {
		respondAdvisorError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"recommendations": recommendations})
}

// Risks handles GET /api/ai/risks
func (h *AIHandler) Risks(c *gin.Context) {
	risks, err := h.aiService.Risks(c.Request.Context())
	if err != nil {
		respondAdvisorError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"risks": risks})
}
