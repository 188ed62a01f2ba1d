package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"flowstate/internal/logging"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// serviceErrors maps service sentinels to HTTP responses. An empty message
// means the error text itself is safe to show.
var serviceErrors = []struct {
	err     error
	code    int
	message string
}{
	{ErrInvalidInput, http.StatusBadRequest, ""},
	{ErrInvalidResetToken, http.StatusBadRequest, "Invalid or expired reset token"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{ErrEmailAlreadyExists, http.StatusConflict, "User with this email already exists"},
	{ErrUserNotFound, http.StatusNotFound, "User not found"},
	{ErrSessionNotFound, http.StatusNotFound, "Session not found"},
	{ErrInterventionNotFound, http.StatusNotFound, "Intervention not found"},
	{ErrMediaNotFound, http.StatusNotFound, "Media not found"},
	{ErrServiceBusy, http.StatusServiceUnavailable, "Service temporarily unavailable, try again"},
	{ErrInsightsUnavailable, http.StatusServiceUnavailable, "Failed to generate AI response"},
	{ErrStorageUnavailable, http.StatusBadGateway, "Failed to store media"},
}

func HandleServiceError(c *gin.Context, err error) {
	for _, se := range serviceErrors {
		if !errors.Is(err, se.err) {
			continue
		}
		msg := se.message
		if msg == "" {
			msg = err.Error()
		}
		if se.code >= http.StatusInternalServerError {
			logging.Ctx(c.Request.Context()).Warn().Err(err).Int("status", se.code).Msg("request failed")
		}
		RespondError(c, se.code, msg)
		return
	}

	if errors.Is(err, ErrDatabaseError) {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("Database error")
	} else {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("Unknown error")
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
