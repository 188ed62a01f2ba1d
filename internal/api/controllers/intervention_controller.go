package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowstate/internal/models/request_models"
	"flowstate/internal/services"
	"flowstate/pkg/middleware"
	"flowstate/pkg/utils"
)

type InterventionController struct {
	interventionService services.InterventionService
}

func NewInterventionController(interventionService services.InterventionService) *InterventionController {
	return &InterventionController{interventionService: interventionService}
}

// ListInterventions godoc
// @Summary List the caller's interventions
// @Tags Interventions
// @Produce json
// @Param limit     query int    false "Page size (default 50)"
// @Param sessionId query string false "Only interventions of this session"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /interventions [get]
func (i *InterventionController) ListInterventions(c *gin.Context) {
	var req request_models.ListInterventionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	items, err := i.interventionService.List(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Interventions fetched successfully")
}

// CreateIntervention godoc
// @Summary Record an intervention
// @Tags Interventions
// @Accept json
// @Produce json
// @Param request body request_models.CreateInterventionRequest true "Intervention"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /interventions [post]
func (i *InterventionController) CreateIntervention(c *gin.Context) {
	var req request_models.CreateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := i.interventionService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, item, "Intervention created successfully")
}

// UpdateIntervention godoc
// @Summary Update completion or effectiveness of an intervention
// @Tags Interventions
// @Accept json
// @Produce json
// @Param id path string true "Intervention ID"
// @Param request body request_models.UpdateInterventionRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /interventions/{id} [patch]
func (i *InterventionController) UpdateIntervention(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := i.interventionService.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Intervention updated successfully")
}

// DeleteIntervention godoc
// @Summary Delete an intervention
// @Tags Interventions
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /interventions/{id} [delete]
func (i *InterventionController) DeleteIntervention(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := i.interventionService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Intervention deleted successfully")
}
