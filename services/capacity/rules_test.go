package capacity

import (
	"testing"
	"time"

	"fieldassist/models"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", value, err)
	}
	return ts
}

func TestResolveStateRuleOrder(t *testing.T) {
	cal := USHolidayCalendar{}
	tests := []struct {
		name  string
		score int
		now   string
		want  models.CapacityState
	}{
		{"holiday wins over everything", 90, "2026-07-04 09:00", models.StateHoliday},
		{"weekend before cutoff", 90, "2026-03-07 09:00", models.StateWeekendEmergency},
		{"weekend after cutoff still weekend", 90, "2026-03-08 18:00", models.StateWeekendEmergency},
		{"weekday after cutoff", 90, "2026-03-04 17:30", models.StateAfterCutoff},
		{"zero score weekday morning", 0, "2026-03-04 09:00", models.StateEmergencyOnly},
		{"high score weekday morning", 82, "2026-03-04 09:00", models.StateSameDayFeeWaived},
		{"fee waived at exact threshold", 70, "2026-03-04 09:00", models.StateSameDayFeeWaived},
		{"mid score weekday morning", 50, "2026-03-04 09:00", models.StateLimitedSameDay},
		{"limited at exact threshold", 35, "2026-03-04 09:00", models.StateLimitedSameDay},
		{"low score weekday morning", 20, "2026-03-04 09:00", models.StateNextDay},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveState(tc.score, mustTime(t, tc.now), 16, cal)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScoreTechnicianClipsToCutoff(t *testing.T) {
	now := mustTime(t, "2026-03-04 09:00")

	// 09:00-16:00 fully open: one window, 420 minutes.
	score, usable := scoreTechnician([]models.TimeWindow{
		{Start: 8 * 60, End: 18 * 60, Label: "all day"},
	}, now, 16)
	assert.Equal(t, 80, score) // 10 + 420/6
	if assert.Len(t, usable, 1) {
		assert.Equal(t, 9*60, usable[0].Start)
		assert.Equal(t, 16*60, usable[0].End)
	}
}

func TestScoreTechnicianDropsWindowsPastCutoff(t *testing.T) {
	now := mustTime(t, "2026-03-04 09:00")

	score, usable := scoreTechnician([]models.TimeWindow{
		{Start: 17 * 60, End: 19 * 60, Label: "evening"},
	}, now, 16)
	assert.Equal(t, 0, score)
	assert.Empty(t, usable)
}

func TestScoreTechnicianCapsAtHundred(t *testing.T) {
	now := mustTime(t, "2026-03-04 07:00")

	score, _ := scoreTechnician([]models.TimeWindow{
		{Start: 7 * 60, End: 11 * 60},
		{Start: 11 * 60, End: 14 * 60},
		{Start: 14 * 60, End: 16 * 60},
	}, now, 16)
	assert.Equal(t, 100, score)
}

func TestAggregateScoresWeightsByOpenMinutes(t *testing.T) {
	techs := map[string]models.TechCapacity{
		"t1": {Score: 80, OpenWindows: []models.TimeWindow{{Start: 0, End: 300}}},
		"t2": {Score: 40, OpenWindows: []models.TimeWindow{{Start: 0, End: 100}}},
	}
	// (80*300 + 40*100) / 400 = 70
	assert.Equal(t, 70, aggregateScores(techs))
}

func TestAggregateScoresNoOpenMinutes(t *testing.T) {
	techs := map[string]models.TechCapacity{
		"t1": {Score: 0},
	}
	assert.Equal(t, 0, aggregateScores(techs))
}
