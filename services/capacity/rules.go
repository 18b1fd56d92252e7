package capacity

import (
	"time"

	"fieldassist/models"
)

// Calendar answers holiday questions for the rule list. Weekends are derived
// from the date itself.
type Calendar interface {
	IsHoliday(day time.Time) bool
}

// USHolidayCalendar covers the fixed-date holidays the office closes for.
type USHolidayCalendar struct{}

func (USHolidayCalendar) IsHoliday(day time.Time) bool {
	switch {
	case day.Month() == time.January && day.Day() == 1:
		return true
	case day.Month() == time.July && day.Day() == 4:
		return true
	case day.Month() == time.December && day.Day() == 25:
		return true
	}
	return false
}

// Score bands for the tail of the rule list.
const (
	feeWaivedThreshold = 70
	limitedThreshold   = 35
)

// resolveState walks the ordered rule list top-down; the first matching rule
// wins, which makes the rules mutually exclusive by construction.
func resolveState(score int, now time.Time, cutoffHour int, cal Calendar) models.CapacityState {
	switch {
	case cal.IsHoliday(now):
		return models.StateHoliday
	case now.Weekday() == time.Saturday || now.Weekday() == time.Sunday:
		return models.StateWeekendEmergency
	case now.Hour() >= cutoffHour:
		return models.StateAfterCutoff
	case score == 0:
		return models.StateEmergencyOnly
	case score >= feeWaivedThreshold:
		return models.StateSameDayFeeWaived
	case score >= limitedThreshold:
		return models.StateLimitedSameDay
	default:
		return models.StateNextDay
	}
}

// scoreTechnician turns a technician's remaining open windows before the
// same-day cutoff into a 0-100 score. Each window is worth a fixed base plus
// its open minutes; a fully open eight-hour day saturates the scale.
func scoreTechnician(windows []models.TimeWindow, now time.Time, cutoffHour int) (int, []models.TimeWindow) {
	cutoffMinute := cutoffHour * 60
	nowMinute := now.Hour()*60 + now.Minute()

	var usable []models.TimeWindow
	total := 0
	for _, w := range windows {
		start, end := w.Start, w.End
		if start < nowMinute {
			start = nowMinute
		}
		if end > cutoffMinute {
			end = cutoffMinute
		}
		if end <= start {
			continue
		}
		usable = append(usable, models.TimeWindow{Start: start, End: end, Label: w.Label})
		total += end - start
	}

	score := len(usable)*10 + total/6
	if score > 100 {
		score = 100
	}
	return score, usable
}

// aggregateScores combines per-technician scores into the overall score using
// a mean weighted by each technician's open minutes. A technician with no
// usable window contributes nothing.
func aggregateScores(techs map[string]models.TechCapacity) int {
	var weighted, totalWeight int
	for _, tc := range techs {
		weight := 0
		for _, w := range tc.OpenWindows {
			weight += w.Minutes()
		}
		weighted += tc.Score * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}
