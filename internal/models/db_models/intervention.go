package db_models

import (
	"time"

	"github.com/google/uuid"

	"flowstate/internal/fieldmap"
)

const (
	InterventionBreathing = "breathing"
	InterventionEyeRest   = "eye-rest"
	InterventionPosture   = "posture"
	InterventionHydration = "hydration"
	InterventionBreak     = "break"
)

var InterventionTypes = []string{
	InterventionBreathing,
	InterventionEyeRest,
	InterventionPosture,
	InterventionHydration,
	InterventionBreak,
}

type Intervention struct {
	BaseModel
	UserID        uuid.UUID  `json:"userId"`
	SessionID     *uuid.UUID `json:"sessionId,omitempty"`
	Type          string     `json:"type"`
	Timestamp     time.Time  `json:"timestamp"`
	Duration      int        `json:"duration"`
	Completed     bool       `json:"completed"`
	Effectiveness *int       `json:"effectiveness,omitempty"`
}

func interventionBase(i *Intervention) *BaseModel { return &i.BaseModel }

// InterventionMapping. Only completed and effectiveness change after creation.
var InterventionMapping = fieldmap.MustNew("interventions", "user_id", "id", nil,
	columns(interventionBase,
		fieldmap.UUID("userId", "user_id", func(i *Intervention) *uuid.UUID { return &i.UserID }).Immutable(),
		fieldmap.OptUUID("sessionId", "session_id", func(i *Intervention) **uuid.UUID { return &i.SessionID }).Immutable(),
		fieldmap.String("type", "type", "", func(i *Intervention) *string { return &i.Type }).Immutable(),
		fieldmap.Time("timestamp", "timestamp", func(i *Intervention) *time.Time { return &i.Timestamp }).DefaultNow().Immutable(),
		fieldmap.Int("duration", "duration", 60, func(i *Intervention) *int { return &i.Duration }).Immutable(),
		fieldmap.Bool("completed", "completed", false, func(i *Intervention) *bool { return &i.Completed }),
		fieldmap.OptInt("effectiveness", "effectiveness", func(i *Intervention) **int { return &i.Effectiveness }),
	)...,
)
