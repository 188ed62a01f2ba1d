package infra

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"flowstate/internal/logging"
)

// Schema is applied in order by Bootstrap. Every statement is idempotent.
// Telemetry decimals are NUMERIC(10,2); scores are whole numbers.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	password TEXT NOT NULL,
	image TEXT,
	age INTEGER,
	date_of_birth TIMESTAMPTZ,
	gender TEXT,
	phone_number TEXT,
	occupation TEXT,
	company TEXT,
	job_title TEXT,
	industry TEXT,
	years_of_experience INTEGER,
	education_level TEXT,
	field_of_study TEXT,
	institution TEXT,
	primary_goals TEXT[] NOT NULL DEFAULT '{}',
	focus_areas TEXT[] NOT NULL DEFAULT '{}',
	hobbies TEXT[] NOT NULL DEFAULT '{}',
	learning_interests TEXT[] NOT NULL DEFAULT '{}',
	preferred_working_hours TEXT,
	work_environment TEXT,
	productivity_challenges TEXT[] NOT NULL DEFAULT '{}',
	timezone TEXT,
	country TEXT,
	city TEXT,
	bio TEXT,
	music_access_token TEXT,
	music_refresh_token TEXT,
	music_token_expiry TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS user_settings (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
	notifications_interventions BOOLEAN NOT NULL DEFAULT TRUE,
	notifications_daily_summary BOOLEAN NOT NULL DEFAULT TRUE,
	flow_detection_sensitivity TEXT NOT NULL DEFAULT 'medium',
	flow_detection_min_duration INTEGER NOT NULL DEFAULT 15,
	intervention_breathing BOOLEAN NOT NULL DEFAULT TRUE,
	intervention_eye_rest BOOLEAN NOT NULL DEFAULT TRUE,
	intervention_posture BOOLEAN NOT NULL DEFAULT TRUE,
	intervention_hydration BOOLEAN NOT NULL DEFAULT TRUE,
	work_schedule_start_time TEXT DEFAULT '09:00',
	work_schedule_end_time TEXT DEFAULT '17:00',
	work_schedule_work_days INTEGER[] NOT NULL DEFAULT '{1,2,3,4,5}',
	distraction_sites TEXT[] NOT NULL DEFAULT '{}',
	privacy_local_processing BOOLEAN NOT NULL DEFAULT TRUE,
	privacy_share_analytics BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS flow_sessions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	start_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	end_time TIMESTAMPTZ,
	duration INTEGER NOT NULL DEFAULT 0,
	quality_score INTEGER NOT NULL DEFAULT 0,
	focus_score INTEGER NOT NULL DEFAULT 0,
	triggers TEXT[] NOT NULL DEFAULT '{}',
	breakers TEXT[] NOT NULL DEFAULT '{}',
	metrics_avg_typing_speed NUMERIC(10,2) NOT NULL DEFAULT 0,
	metrics_tab_switches INTEGER NOT NULL DEFAULT 0,
	metrics_mouse_activity NUMERIC(10,2) NOT NULL DEFAULT 0,
	metrics_fatigue_level NUMERIC(10,2) NOT NULL DEFAULT 0,
	language TEXT NOT NULL DEFAULT 'javascript',
	distractions INTEGER NOT NULL DEFAULT 0,
	session_type TEXT NOT NULL DEFAULT 'other',
	code_metrics_lines_of_code INTEGER NOT NULL DEFAULT 0,
	code_metrics_characters_typed INTEGER NOT NULL DEFAULT 0,
	code_metrics_complexity_score NUMERIC(10,2) NOT NULL DEFAULT 0,
	code_metrics_errors_fixed INTEGER NOT NULL DEFAULT 0,
	whiteboard_metrics_total_strokes INTEGER,
	whiteboard_metrics_shapes_drawn INTEGER,
	whiteboard_metrics_colors_used INTEGER,
	whiteboard_metrics_canvas_coverage NUMERIC(10,2),
	whiteboard_metrics_eraser_uses INTEGER,
	whiteboard_metrics_tool_switches INTEGER,
	whiteboard_metrics_average_stroke_speed NUMERIC(10,2),
	whiteboard_metrics_creativity_score NUMERIC(10,2),
	interventions TEXT[] NOT NULL DEFAULT '{}',
	notes TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS interventions (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	session_id UUID REFERENCES flow_sessions(id) ON DELETE SET NULL,
	type TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	duration INTEGER NOT NULL DEFAULT 60,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	effectiveness INTEGER,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE TABLE IF NOT EXISTS media (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	session_id UUID REFERENCES flow_sessions(id) ON DELETE SET NULL,
	type TEXT NOT NULL,
	storage_key TEXT NOT NULL,
	storage_url TEXT NOT NULL,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	size BIGINT NOT NULL DEFAULT 0,
	metadata JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_flow_sessions_user_id ON flow_sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_flow_sessions_start_time ON flow_sessions(start_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_flow_sessions_created_at ON flow_sessions(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_user_id ON interventions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_interventions_timestamp ON interventions(timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_media_user_id ON media(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_media_created_at ON media(created_at DESC)`,
}

// Bootstrap applies Schema in a single transaction. A failing statement rolls
// back everything applied before it.
func Bootstrap(ctx context.Context, db *gorm.DB) error {
	tx := StartTransaction(ctx, db)
	if tx.Error != nil {
		return fmt.Errorf("begin schema bootstrap: %w", tx.Error)
	}

	var err error
	for i, stmt := range Schema {
		if err = tx.Exec(stmt).Error; err != nil {
			err = fmt.Errorf("schema statement %d: %w", i+1, err)
			break
		}
	}
	if err := ReleaseTransaction(tx, err); err != nil {
		return err
	}

	logging.Info().Int("statements", len(Schema)).Msg("database schema ready")
	return nil
}
