package request_models

import "time"

const DefaultListLimit = 50

type ListSessionsRequest struct {
	Limit int        `form:"limit"`
	Skip  int        `form:"skip"`
	From  *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To    *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type AnalyticsRequest struct {
	// Period is week, month, year or all. Empty means week.
	Period string `form:"period"`
}
