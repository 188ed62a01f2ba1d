package utils

import "time"

// Analytics periods accepted by the API.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// StartOfWeek returns midnight of the Sunday on or before t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// PeriodStart returns the lower bound of period ending at now. Unknown
// periods mean all time and yield the zero time.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case PeriodWeek:
		return StartOfWeek(now)
	case PeriodMonth:
		return StartOfMonth(now)
	case PeriodYear:
		return now.AddDate(0, 0, -365)
	default:
		return time.Time{}
	}
}
