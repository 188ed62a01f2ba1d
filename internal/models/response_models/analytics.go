package response_models

import "time"

type TriggerCount struct {
	Trigger string `json:"trigger"`
	Count   int    `json:"count"`
}

type BreakerCount struct {
	Breaker string `json:"breaker"`
	Count   int    `json:"count"`
}

type HourStat struct {
	Hour       int     `json:"hour"`
	Sessions   int     `json:"sessions"`
	AvgQuality float64 `json:"avgQuality"`
}

type SessionPoint struct {
	Date     time.Time `json:"date"`
	Duration int       `json:"duration"`
	Quality  int       `json:"quality"`
}

type AnalyticsReport struct {
	Period           string         `json:"period"`
	From             time.Time      `json:"from"`
	To               time.Time      `json:"to"`
	TotalSessions    int            `json:"totalSessions"`
	TotalDuration    int            `json:"totalDuration"`
	AvgDuration      int            `json:"avgDuration"`
	AvgQualityScore  float64        `json:"avgQualityScore"`
	TopTriggers      []TriggerCount `json:"topTriggers"`
	TopBreakers      []BreakerCount `json:"topBreakers"`
	BestHours        []HourStat     `json:"bestHours"`
	SessionsOverTime []SessionPoint `json:"sessionsOverTime"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
