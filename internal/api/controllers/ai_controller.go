package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowstate/internal/models/request_models"
	"flowstate/internal/models/response_models"
	"flowstate/internal/services"
	"flowstate/pkg/utils"
)

type AIController struct {
	insightsService services.InsightsService
}

func NewAIController(insightsService services.InsightsService) *AIController {
	return &AIController{insightsService: insightsService}
}

// Chat godoc
// @Summary Ask the flow coach
// @Tags AI
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Conversation so far"
// @Success 200 {object} utils.APIResponse{data=response_models.ChatResponse}
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /ai/chat [post]
func (a *AIController) Chat(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Messages array is required")
		return
	}

	answer, err := a.insightsService.Chat(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ChatResponse{Response: answer}, "Response generated successfully")
}
