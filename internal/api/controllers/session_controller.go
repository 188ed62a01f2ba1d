package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flowstate/internal/models/request_models"
	"flowstate/internal/services"
	"flowstate/pkg/middleware"
	"flowstate/pkg/utils"
)

type SessionController struct {
	sessionService services.SessionService
}

func NewSessionController(sessionService services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// ListSessions godoc
// @Summary List the caller's flow sessions
// @Description Most recent start first
// @Tags Sessions
// @Produce json
// @Param limit query int false "Page size (default 50)"
// @Param skip  query int false "Records to skip"
// @Param from  query string false "RFC3339 lower bound on startTime"
// @Param to    query string false "RFC3339 upper bound on startTime"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions [get]
func (s *SessionController) ListSessions(c *gin.Context) {
	var req request_models.ListSessionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	sessions, err := s.sessionService.List(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, sessions, "Sessions fetched successfully")
}

// GetSession godoc
// @Summary Get one flow session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id} [get]
func (s *SessionController) GetSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := s.sessionService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session fetched successfully")
}

// CreateSession godoc
// @Summary Record a flow session
// @Tags Sessions
// @Accept json
// @Produce json
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions [post]
func (s *SessionController) CreateSession(c *gin.Context) {
	payload, ok := bindDocument(c)
	if !ok {
		return
	}

	session, err := s.sessionService.Create(c.Request.Context(), middleware.UserID(c), payload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, session, "Session created successfully")
}

// UpdateSession godoc
// @Summary Partially update a flow session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id} [patch]
func (s *SessionController) UpdateSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindDocument(c)
	if !ok {
		return
	}

	session, err := s.sessionService.Update(c.Request.Context(), middleware.UserID(c), id, payload)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session updated successfully")
}

// DeleteSession godoc
// @Summary Delete a flow session
// @Description Interventions and media of the session are kept and detached
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (s *SessionController) DeleteSession(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := s.sessionService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Session deleted successfully")
}
