package request_models

import "time"

type ListInterventionsRequest struct {
	Limit     int    `form:"limit"`
	SessionID string `form:"sessionId" binding:"omitempty,uuid"`
}

type CreateInterventionRequest struct {
	SessionID     *string    `json:"sessionId" binding:"omitempty,uuid"`
	Type          string     `json:"type" binding:"required"`
	Timestamp     *time.Time `json:"timestamp"`
	Duration      *int       `json:"duration" binding:"omitempty,min=0"`
	Completed     *bool      `json:"completed"`
	Effectiveness *int       `json:"effectiveness" binding:"omitempty,min=1,max=5"`
}

type UpdateInterventionRequest struct {
	Completed     *bool `json:"completed"`
	Effectiveness *int  `json:"effectiveness" binding:"omitempty,min=1,max=5"`
}
