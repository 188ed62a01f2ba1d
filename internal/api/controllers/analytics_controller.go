package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowstate/internal/models/request_models"
	"flowstate/internal/services"
	"flowstate/pkg/middleware"
	"flowstate/pkg/utils"
)

type AnalyticsController struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsController(analyticsService services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analyticsService: analyticsService}
}

// GetAnalytics godoc
// @Summary Flow analytics for the caller
// @Description Totals, top triggers and breakers, best hours and a per-session series
// @Tags Analytics
// @Produce json
// @Param period query string false "week (default), month, year or all"
// @Success 200 {object} utils.APIResponse{data=response_models.AnalyticsReport}
// @Security BearerAuth
// @Router /analytics [get]
func (a *AnalyticsController) GetAnalytics(c *gin.Context) {
	var req request_models.AnalyticsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	report, err := a.analyticsService.Report(c.Request.Context(), middleware.UserID(c), req.Period)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, report, "Analytics fetched successfully")
}
