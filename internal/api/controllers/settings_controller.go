package controllers

import (
	"github.com/gin-gonic/gin"

	"flowstate/internal/services"
	"flowstate/pkg/middleware"
	"flowstate/pkg/utils"
)

type SettingsController struct {
	settingsService services.SettingsService
}

func NewSettingsController(settingsService services.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

// GetSettings godoc
// @Summary Get the caller's settings
// @Description Settings are created with defaults on first read
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /settings [get]
func (s *SettingsController) GetSettings(c *gin.Context) {
	settings, err := s.settingsService.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, settings, "Settings fetched successfully")
}

// UpdateSettings godoc
// @Summary Merge changes into the caller's settings
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /settings [patch]
func (s *SettingsController) UpdateSettings(c *gin.Context) {
	payload, ok := bindDocument(c)
	if !ok {
		return
	}

	settings, err := s.settingsService.Update(c.Request.Context(), middleware.UserID(c), payload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, settings, "Settings updated successfully")
}
