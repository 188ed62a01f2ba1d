package services

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"flowstate/internal/models/db_models"
	resp "flowstate/internal/models/response_models"
	"flowstate/internal/repositories"
	"flowstate/pkg/utils"
)

const (
	topTagCount   = 5
	bestHourCount = 3
)

type AnalyticsService interface {
	Report(ctx context.Context, userID uuid.UUID, period string) (*resp.AnalyticsReport, error)
}

type analyticsService struct {
	sessions repositories.FlowSessionRepository
	now      func() time.Time
}

func NewAnalyticsService(sessions repositories.FlowSessionRepository) AnalyticsService {
	return &analyticsService{
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Report summarises the sessions started between the beginning of period and
// now. An empty period means week; an unknown one means all time.
func (s *analyticsService) Report(ctx context.Context, userID uuid.UUID, period string) (*resp.AnalyticsReport, error) {
	if period == "" {
		period = utils.PeriodWeek
	}
	now := s.now()
	from := utils.PeriodStart(period, now)

	opts := repositories.FindOptions{To: &now}
	if !from.IsZero() {
		opts.From = &from
	}
	sessions, err := s.sessions.Find(ctx, userID, opts)
	if err != nil {
		return nil, repoError("list sessions", err)
	}

	report := buildReport(sessions)
	report.Period = period
	report.From = from
	report.To = now
	return report, nil
}

type tally struct {
	keys   []string
	counts map[string]int
}

func (t *tally) add(key string) {
	if t.counts == nil {
		t.counts = map[string]int{}
	}
	if _, ok := t.counts[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.counts[key]++
}

// top returns keys by descending count; ties keep first-seen order.
func (t *tally) top(n int) []string {
	keys := slices.Clone(t.keys)
	slices.SortStableFunc(keys, func(a, b string) int { return t.counts[b] - t.counts[a] })
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

type hourBucket struct {
	sessions     int
	totalQuality int
}

func buildReport(sessions []*db_models.FlowSession) *resp.AnalyticsReport {
	report := &resp.AnalyticsReport{
		TotalSessions:    len(sessions),
		TopTriggers:      []resp.TriggerCount{},
		TopBreakers:      []resp.BreakerCount{},
		BestHours:        []resp.HourStat{},
		SessionsOverTime: make([]resp.SessionPoint, 0, len(sessions)),
	}

	var triggers, breakers tally
	var hours []int
	buckets := map[int]*hourBucket{}
	totalQuality := 0

	// Sessions arrive newest first; the series is reported oldest first.
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		report.TotalDuration += s.Duration
		totalQuality += s.QualityScore
		for _, t := range s.Triggers {
			triggers.add(t)
		}
		for _, b := range s.Breakers {
			breakers.add(b)
		}

		hour := s.StartTime.UTC().Hour()
		b, ok := buckets[hour]
		if !ok {
			b = &hourBucket{}
			buckets[hour] = b
			hours = append(hours, hour)
		}
		b.sessions++
		b.totalQuality += s.QualityScore

		report.SessionsOverTime = append(report.SessionsOverTime, resp.SessionPoint{
			Date:     s.StartTime,
			Duration: s.Duration,
			Quality:  s.QualityScore,
		})
	}

	if n := len(sessions); n > 0 {
		report.AvgDuration = int(math.Round(float64(report.TotalDuration) / float64(n)))
		report.AvgQualityScore = math.Round(float64(totalQuality)/float64(n)*10) / 10
	}

	for _, key := range triggers.top(topTagCount) {
		report.TopTriggers = append(report.TopTriggers, resp.TriggerCount{Trigger: key, Count: triggers.counts[key]})
	}
	for _, key := range breakers.top(topTagCount) {
		report.TopBreakers = append(report.TopBreakers, resp.BreakerCount{Breaker: key, Count: breakers.counts[key]})
	}

	for _, hour := range hours {
		b := buckets[hour]
		report.BestHours = append(report.BestHours, resp.HourStat{
			Hour:       hour,
			Sessions:   b.sessions,
			AvgQuality: float64(b.totalQuality) / float64(b.sessions),
		})
	}
	slices.SortStableFunc(report.BestHours, func(a, b resp.HourStat) int {
		switch {
		case a.AvgQuality > b.AvgQuality:
			return -1
		case a.AvgQuality < b.AvgQuality:
			return 1
		}
		return 0
	})
	if len(report.BestHours) > bestHourCount {
		report.BestHours = report.BestHours[:bestHourCount]
	}
	return report
}
