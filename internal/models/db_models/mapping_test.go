package db_models

import (
	"database/sql/driver"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowstate/internal/fieldmap"
)

var now = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func storedRow(t *testing.T, st *fieldmap.Statement) fieldmap.Row {
	t.Helper()
	row := fieldmap.Row{}
	for i, c := range st.Columns {
		v := st.Args[i]
		if valuer, ok := v.(driver.Valuer); ok {
			dv, err := valuer.Value()
			require.NoError(t, err)
			v = dv
		}
		// NUMERIC columns come back from the driver as text
		if f, ok := v.(float64); ok {
			v = []byte(strconv.FormatFloat(f, 'f', -1, 64))
		}
		row[c] = v
	}
	return row
}

func roundTrip[T any](t *testing.T, m *fieldmap.Mapping[T], rec *T) *T {
	t.Helper()
	got, err := m.Decode(storedRow(t, m.Encode(rec)))
	require.NoError(t, err)
	return got
}

func TestUserRoundTrip(t *testing.T) {
	rec := UserMapping.Defaults(now)
	assert.Equal(t, []string{}, rec.PrimaryGoals)
	assert.Equal(t, rec, roundTrip(t, UserMapping, rec))

	age := 31
	bio := "ships things"
	require.NoError(t, UserMapping.Apply(rec, fieldmap.Patch{
		"email":        "ana@example.com",
		"name":         "Ana",
		"age":          age,
		"bio":          bio,
		"focusAreas":   []any{"writing", "review"},
		"dateOfBirth":  "1993-05-02",
		"unknownField": true,
	}, now))
	assert.Equal(t, &age, rec.Age)
	assert.Equal(t, rec, roundTrip(t, UserMapping, rec))
}

func TestUserSettingsRoundTrip(t *testing.T) {
	rec := UserSettingsMapping.Defaults(now)

	assert.True(t, rec.Notifications.Enabled)
	assert.True(t, rec.Notifications.Interventions)
	assert.True(t, rec.Notifications.DailySummary)
	assert.Equal(t, "medium", rec.FlowDetection.Sensitivity)
	assert.Equal(t, 15, rec.FlowDetection.MinDuration)
	assert.True(t, rec.InterventionPreferences.EyeRest)
	require.NotNil(t, rec.WorkSchedule.StartTime)
	assert.Equal(t, "09:00", *rec.WorkSchedule.StartTime)
	assert.Equal(t, "17:00", *rec.WorkSchedule.EndTime)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, rec.WorkSchedule.WorkDays)
	assert.Equal(t, []string{}, rec.DistractionSites)
	assert.True(t, rec.Privacy.LocalProcessing)
	assert.False(t, rec.Privacy.ShareAnalytics)

	rec.UserID = uuid.New()
	assert.Equal(t, rec, roundTrip(t, UserSettingsMapping, rec))
}

func TestUserSettingsPartialGroupUpdate(t *testing.T) {
	st, err := UserSettingsMapping.BuildUpdate(fieldmap.Patch{
		"notifications": map[string]any{"enabled": false},
	}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"notifications_enabled", "updated_at"}, st.Columns)
}

func TestFlowSessionDefaults(t *testing.T) {
	rec := FlowSessionMapping.Defaults(now)
	require.NoError(t, FlowSessionMapping.Apply(rec, fieldmap.Patch{"startTime": "2024-01-01T09:00:00Z"}, now))

	assert.Equal(t, now, rec.StartTime)
	assert.Equal(t, 0, rec.Duration)
	assert.Equal(t, 0, rec.QualityScore)
	assert.Equal(t, "other", rec.SessionType)
	assert.Equal(t, "javascript", rec.Language)
	assert.Equal(t, []string{}, rec.Triggers)
	assert.Equal(t, []string{}, rec.Interventions)
	assert.Nil(t, rec.WhiteboardMetrics)
}

func TestFlowSessionRoundTrip(t *testing.T) {
	t.Run("without whiteboard", func(t *testing.T) {
		rec := FlowSessionMapping.Defaults(now)
		rec.UserID = uuid.New()
		rec.Metrics = SessionMetrics{AvgTypingSpeed: 72.5, TabSwitches: 3, MouseActivity: 0.25, FatigueLevel: 4}
		rec.CodeMetrics = CodeMetrics{LinesOfCode: 120, ComplexityScore: 3.75}
		rec.Triggers = []string{"music", "quiet room"}

		got := roundTrip(t, FlowSessionMapping, rec)
		assert.Equal(t, rec, got)
		assert.Nil(t, got.WhiteboardMetrics)
	})

	t.Run("with whiteboard", func(t *testing.T) {
		rec := FlowSessionMapping.Defaults(now)
		require.NoError(t, FlowSessionMapping.Apply(rec, fieldmap.Patch{
			"sessionType":       SessionTypeWhiteboard,
			"whiteboardMetrics": map[string]any{"totalStrokes": 0, "canvasCoverage": 0.4},
		}, now))
		require.NotNil(t, rec.WhiteboardMetrics)

		got := roundTrip(t, FlowSessionMapping, rec)
		assert.Equal(t, rec, got)
		require.NotNil(t, got.WhiteboardMetrics, "a zero stroke count still marks the group present")
	})
}

func TestInterventionRoundTrip(t *testing.T) {
	rec := InterventionMapping.Defaults(now)
	assert.Equal(t, 60, rec.Duration)
	assert.False(t, rec.Completed)
	assert.Equal(t, now, rec.Timestamp)

	sid := uuid.New()
	require.NoError(t, InterventionMapping.Apply(rec, fieldmap.Patch{
		"type":      InterventionEyeRest,
		"sessionId": sid.String(),
	}, now))
	assert.Equal(t, &sid, rec.SessionID)
	assert.Equal(t, rec, roundTrip(t, InterventionMapping, rec))
}

func TestInterventionUpdatableFields(t *testing.T) {
	paths, err := InterventionMapping.Paths(fieldmap.Patch{
		"type":          InterventionPosture,
		"duration":      5,
		"timestamp":     now,
		"completed":     true,
		"effectiveness": 4,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"completed", "effectiveness"}, paths)
}

func TestMediaRoundTrip(t *testing.T) {
	rec := MediaMapping.Defaults(now)
	assert.Equal(t, map[string]any{}, rec.Metadata)
	assert.Equal(t, rec, roundTrip(t, MediaMapping, rec))

	require.NoError(t, MediaMapping.Apply(rec, fieldmap.Patch{
		"type":       MediaSnapshot,
		"storageKey": "users/u/k.png",
		"filename":   "k.png",
		"size":       2048,
		"metadata":   map[string]any{"width": float64(800)},
	}, now))
	assert.Equal(t, rec, roundTrip(t, MediaMapping, rec))
}
