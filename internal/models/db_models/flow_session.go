package db_models

import (
	"time"

	"github.com/google/uuid"

	"flowstate/internal/fieldmap"
)

type SessionMetrics struct {
	AvgTypingSpeed float64 `json:"avgTypingSpeed"`
	TabSwitches    int     `json:"tabSwitches"`
	MouseActivity  float64 `json:"mouseActivity"`
	FatigueLevel   float64 `json:"fatigueLevel"`
}

type CodeMetrics struct {
	LinesOfCode     int     `json:"linesOfCode"`
	CharactersTyped int     `json:"charactersTyped"`
	ComplexityScore float64 `json:"complexityScore"`
	ErrorsFixed     int     `json:"errorsFixed"`
}

type WhiteboardMetrics struct {
	TotalStrokes       int     `json:"totalStrokes"`
	ShapesDrawn        int     `json:"shapesDrawn"`
	ColorsUsed         int     `json:"colorsUsed"`
	CanvasCoverage     float64 `json:"canvasCoverage"`
	EraserUses         int     `json:"eraserUses"`
	ToolSwitches       int     `json:"toolSwitches"`
	AverageStrokeSpeed float64 `json:"averageStrokeSpeed"`
	CreativityScore    float64 `json:"creativityScore"`
}

// Session types accepted by the API. Stored as free text.
const (
	SessionTypeCode       = "code"
	SessionTypeWhiteboard = "whiteboard"
	SessionTypeOther      = "other"
)

type FlowSession struct {
	BaseModel
	UserID            uuid.UUID          `json:"userId"`
	StartTime         time.Time          `json:"startTime"`
	EndTime           *time.Time         `json:"endTime,omitempty"`
	Duration          int                `json:"duration"`
	QualityScore      int                `json:"qualityScore"`
	FocusScore        int                `json:"focusScore"`
	Triggers          []string           `json:"triggers"`
	Breakers          []string           `json:"breakers"`
	Metrics           SessionMetrics     `json:"metrics"`
	Language          string             `json:"language"`
	Distractions      int                `json:"distractions"`
	SessionType       string             `json:"sessionType"`
	CodeMetrics       CodeMetrics        `json:"codeMetrics"`
	WhiteboardMetrics *WhiteboardMetrics `json:"whiteboardMetrics,omitempty"`
	Interventions     []string           `json:"interventions"`
	Notes             *string            `json:"notes,omitempty"`
}

func (s *FlowSession) whiteboard() *WhiteboardMetrics {
	if s.WhiteboardMetrics == nil {
		s.WhiteboardMetrics = &WhiteboardMetrics{}
	}
	return s.WhiteboardMetrics
}

func sessionBase(s *FlowSession) *BaseModel { return &s.BaseModel }

// FlowSessionMapping. whiteboardMetrics is present only on sessions that
// recorded a stroke count.
var FlowSessionMapping = fieldmap.MustNew("flow_sessions", "user_id", "id",
	[]fieldmap.Group[FlowSession]{
		{Name: "metrics"},
		{Name: "codeMetrics"},
		{
			Name:     "whiteboardMetrics",
			Optional: true,
			Anchor:   "whiteboard_metrics_total_strokes",
			Present:  func(s *FlowSession) bool { return s.WhiteboardMetrics != nil },
			Clear:    func(s *FlowSession) { s.WhiteboardMetrics = nil },
		},
	},
	columns(sessionBase,
		fieldmap.UUID("userId", "user_id", func(s *FlowSession) *uuid.UUID { return &s.UserID }).Immutable(),
		fieldmap.Time("startTime", "start_time", func(s *FlowSession) *time.Time { return &s.StartTime }).DefaultNow(),
		fieldmap.OptTime("endTime", "end_time", func(s *FlowSession) **time.Time { return &s.EndTime }),
		fieldmap.Int("duration", "duration", 0, func(s *FlowSession) *int { return &s.Duration }),
		fieldmap.Int("qualityScore", "quality_score", 0, func(s *FlowSession) *int { return &s.QualityScore }),
		fieldmap.Int("focusScore", "focus_score", 0, func(s *FlowSession) *int { return &s.FocusScore }),
		fieldmap.Strings("triggers", "triggers", func(s *FlowSession) *[]string { return &s.Triggers }),
		fieldmap.Strings("breakers", "breakers", func(s *FlowSession) *[]string { return &s.Breakers }),
		fieldmap.Float("metrics.avgTypingSpeed", "metrics_avg_typing_speed", 0,
			func(s *FlowSession) *float64 { return &s.Metrics.AvgTypingSpeed }),
		fieldmap.Int("metrics.tabSwitches", "metrics_tab_switches", 0,
			func(s *FlowSession) *int { return &s.Metrics.TabSwitches }),
		fieldmap.Float("metrics.mouseActivity", "metrics_mouse_activity", 0,
			func(s *FlowSession) *float64 { return &s.Metrics.MouseActivity }),
		fieldmap.Float("metrics.fatigueLevel", "metrics_fatigue_level", 0,
			func(s *FlowSession) *float64 { return &s.Metrics.FatigueLevel }),
		fieldmap.String("language", "language", "javascript", func(s *FlowSession) *string { return &s.Language }),
		fieldmap.Int("distractions", "distractions", 0, func(s *FlowSession) *int { return &s.Distractions }),
		fieldmap.String("sessionType", "session_type", SessionTypeOther, func(s *FlowSession) *string { return &s.SessionType }),
		fieldmap.Int("codeMetrics.linesOfCode", "code_metrics_lines_of_code", 0,
			func(s *FlowSession) *int { return &s.CodeMetrics.LinesOfCode }),
		fieldmap.Int("codeMetrics.charactersTyped", "code_metrics_characters_typed", 0,
			func(s *FlowSession) *int { return &s.CodeMetrics.CharactersTyped }),
		fieldmap.Float("codeMetrics.complexityScore", "code_metrics_complexity_score", 0,
			func(s *FlowSession) *float64 { return &s.CodeMetrics.ComplexityScore }),
		fieldmap.Int("codeMetrics.errorsFixed", "code_metrics_errors_fixed", 0,
			func(s *FlowSession) *int { return &s.CodeMetrics.ErrorsFixed }),
		fieldmap.Int("whiteboardMetrics.totalStrokes", "whiteboard_metrics_total_strokes", 0,
			func(s *FlowSession) *int { return &s.whiteboard().TotalStrokes }),
		fieldmap.Int("whiteboardMetrics.shapesDrawn", "whiteboard_metrics_shapes_drawn", 0,
			func(s *FlowSession) *int { return &s.whiteboard().ShapesDrawn }),
		fieldmap.Int("whiteboardMetrics.colorsUsed", "whiteboard_metrics_colors_used", 0,
			func(s *FlowSession) *int { return &s.whiteboard().ColorsUsed }),
		fieldmap.Float("whiteboardMetrics.canvasCoverage", "whiteboard_metrics_canvas_coverage", 0,
			func(s *FlowSession) *float64 { return &s.whiteboard().CanvasCoverage }),
		fieldmap.Int("whiteboardMetrics.eraserUses", "whiteboard_metrics_eraser_uses", 0,
			func(s *FlowSession) *int { return &s.whiteboard().EraserUses }),
		fieldmap.Int("whiteboardMetrics.toolSwitches", "whiteboard_metrics_tool_switches", 0,
			func(s *FlowSession) *int { return &s.whiteboard().ToolSwitches }),
		fieldmap.Float("whiteboardMetrics.averageStrokeSpeed", "whiteboard_metrics_average_stroke_speed", 0,
			func(s *FlowSession) *float64 { return &s.whiteboard().AverageStrokeSpeed }),
		fieldmap.Float("whiteboardMetrics.creativityScore", "whiteboard_metrics_creativity_score", 0,
			func(s *FlowSession) *float64 { return &s.whiteboard().CreativityScore }),
		fieldmap.Strings("interventions", "interventions", func(s *FlowSession) *[]string { return &s.Interventions }),
		fieldmap.OptString("notes", "notes", func(s *FlowSession) **string { return &s.Notes }),
	)...,
)
