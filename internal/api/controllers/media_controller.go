package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"flowstate/internal/models/request_models"
	"flowstate/internal/services"
	"flowstate/pkg/middleware"
	"flowstate/pkg/utils"
)

type MediaController struct {
	mediaService   services.MediaService
	maxUploadBytes int64
}

func NewMediaController(mediaService services.MediaService, maxUploadBytes int64) *MediaController {
	return &MediaController{
		mediaService:   mediaService,
		maxUploadBytes: maxUploadBytes,
	}
}

// ListMedia godoc
// @Summary List the caller's media
// @Tags Media
// @Produce json
// @Param sessionId query string false "Only media of this session"
// @Param limit     query int    false "Page size (default 50)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /media [get]
func (m *MediaController) ListMedia(c *gin.Context) {
	var req request_models.ListMediaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	items, err := m.mediaService.List(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, items, "Media fetched successfully")
}

// GetMedia godoc
// @Summary Get one media item with a fresh URL
// @Tags Media
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /media/{id} [get]
func (m *MediaController) GetMedia(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := m.mediaService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Media fetched successfully")
}

// UploadMedia godoc
// @Summary Upload a file
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file      formData file   true  "File"
// @Param type      formData string true  "snapshot, audio, video or document"
// @Param sessionId formData string false "Session the file belongs to"
// @Param metadata  formData string false "JSON object"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 413 {object} utils.APIResponse
// @Security BearerAuth
// @Router /media/upload [post]
func (m *MediaController) UploadMedia(c *gin.Context) {
	if m.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, m.maxUploadBytes)
	}

	var req request_models.UploadMediaRequest
	if err := c.ShouldBind(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(c, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	var metadata map[string]any
	if req.Metadata != "" {
		if err := json.Unmarshal([]byte(req.Metadata), &metadata); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "metadata must be a JSON object")
			return
		}
	}

	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	item, err := m.mediaService.Upload(c.Request.Context(), middleware.UserID(c), services.UploadInput{
		Type:        req.Type,
		SessionID:   req.SessionID,
		Metadata:    metadata,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, item, "Media uploaded successfully")
}

// DeleteMedia godoc
// @Summary Delete a media item and its stored object
// @Tags Media
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /media/{id} [delete]
func (m *MediaController) DeleteMedia(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := m.mediaService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Media deleted successfully")
}
