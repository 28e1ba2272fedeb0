// internal/handlers/config.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nurgarden/ngms-backend/internal/config"
	"github.com/nurgarden/ngms-backend/internal/utils"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// MapboxToken handles GET /api/config/mapbox-token. The frontend map widget
// fetches its access token here instead of shipping it in the bundle.
func (h *ConfigHandler) MapboxToken(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{"token": h.cfg.Mapbox.Token})
}
