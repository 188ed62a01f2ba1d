package db_models

import (
	"github.com/google/uuid"

	"flowstate/internal/fieldmap"
)

type NotificationSettings struct {
	Enabled       bool `json:"enabled"`
	Interventions bool `json:"interventions"`
	DailySummary  bool `json:"dailySummary"`
}

type FlowDetectionSettings struct {
	Sensitivity string `json:"sensitivity"`
	MinDuration int    `json:"minDuration"`
}

type InterventionPreferences struct {
	Breathing bool `json:"breathing"`
	EyeRest   bool `json:"eyeRest"`
	Posture   bool `json:"posture"`
	Hydration bool `json:"hydration"`
}

type WorkSchedule struct {
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	WorkDays  []int   `json:"workDays"`
}

type PrivacySettings struct {
	LocalProcessing bool `json:"localProcessing"`
	ShareAnalytics  bool `json:"shareAnalytics"`
}

type UserSettings struct {
	BaseModel
	UserID                  uuid.UUID               `json:"userId"`
	Notifications           NotificationSettings    `json:"notifications"`
	FlowDetection           FlowDetectionSettings   `json:"flowDetection"`
	InterventionPreferences InterventionPreferences `json:"interventionPreferences"`
	WorkSchedule            WorkSchedule            `json:"workSchedule"`
	DistractionSites        []string                `json:"distractionSites"`
	Privacy                 PrivacySettings         `json:"privacy"`
}

func settingsBase(s *UserSettings) *BaseModel { return &s.BaseModel }

var UserSettingsMapping = fieldmap.MustNew("user_settings", "user_id", "id",
	[]fieldmap.Group[UserSettings]{
		{Name: "notifications"},
		{Name: "flowDetection"},
		{Name: "interventionPreferences"},
		{Name: "workSchedule"},
		{Name: "privacy"},
	},
	columns(settingsBase,
		fieldmap.UUID("userId", "user_id", func(s *UserSettings) *uuid.UUID { return &s.UserID }).Immutable(),
		fieldmap.Bool("notifications.enabled", "notifications_enabled", true,
			func(s *UserSettings) *bool { return &s.Notifications.Enabled }),
		fieldmap.Bool("notifications.interventions", "notifications_interventions", true,
			func(s *UserSettings) *bool { return &s.Notifications.Interventions }),
		fieldmap.Bool("notifications.dailySummary", "notifications_daily_summary", true,
			func(s *UserSettings) *bool { return &s.Notifications.DailySummary }),
		fieldmap.String("flowDetection.sensitivity", "flow_detection_sensitivity", "medium",
			func(s *UserSettings) *string { return &s.FlowDetection.Sensitivity }),
		fieldmap.Int("flowDetection.minDuration", "flow_detection_min_duration", 15,
			func(s *UserSettings) *int { return &s.FlowDetection.MinDuration }),
		fieldmap.Bool("interventionPreferences.breathing", "intervention_breathing", true,
			func(s *UserSettings) *bool { return &s.InterventionPreferences.Breathing }),
		fieldmap.Bool("interventionPreferences.eyeRest", "intervention_eye_rest", true,
			func(s *UserSettings) *bool { return &s.InterventionPreferences.EyeRest }),
		fieldmap.Bool("interventionPreferences.posture", "intervention_posture", true,
			func(s *UserSettings) *bool { return &s.InterventionPreferences.Posture }),
		fieldmap.Bool("interventionPreferences.hydration", "intervention_hydration", true,
			func(s *UserSettings) *bool { return &s.InterventionPreferences.Hydration }),
		fieldmap.OptString("workSchedule.startTime", "work_schedule_start_time",
			func(s *UserSettings) **string { return &s.WorkSchedule.StartTime }).WithDefault("09:00"),
		fieldmap.OptString("workSchedule.endTime", "work_schedule_end_time",
			func(s *UserSettings) **string { return &s.WorkSchedule.EndTime }).WithDefault("17:00"),
		fieldmap.Ints("workSchedule.workDays", "work_schedule_work_days", []int{1, 2, 3, 4, 5},
			func(s *UserSettings) *[]int { return &s.WorkSchedule.WorkDays }),
		fieldmap.Strings("distractionSites", "distraction_sites",
			func(s *UserSettings) *[]string { return &s.DistractionSites }),
		fieldmap.Bool("privacy.localProcessing", "privacy_local_processing", true,
			func(s *UserSettings) *bool { return &s.Privacy.LocalProcessing }),
		fieldmap.Bool("privacy.shareAnalytics", "privacy_share_analytics", false,
			func(s *UserSettings) *bool { return &s.Privacy.ShareAnalytics }),
	)...,
)
