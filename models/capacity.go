package models

import "time"

// CapacityState is the discrete label describing how soon a new customer can be
// served today and whether the dispatch fee is waived.
type CapacityState string

const (
	StateSameDayFeeWaived CapacityState = "SAME_DAY_FEE_WAIVED"
	StateLimitedSameDay   CapacityState = "LIMITED_SAME_DAY"
	StateNextDay          CapacityState = "NEXT_DAY"
	StateEmergencyOnly    CapacityState = "EMERGENCY_ONLY"
	StateWeekendEmergency CapacityState = "WEEKEND_EMERGENCY"
	StateHoliday          CapacityState = "HOLIDAY"
	StateAfterCutoff      CapacityState = "AFTER_CUTOFF"
)

// TimeWindow is a continuous open block in a technician's day.
type TimeWindow struct {
	Start int    `bson:"start" json:"start"` // minutes from midnight (e.g., 540 for 9:00 AM)
	End   int    `bson:"end" json:"end"`     // minutes from midnight
	Label string `bson:"label,omitempty" json:"label,omitempty"`
}

// Minutes returns the length of the window.
func (w TimeWindow) Minutes() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

// TechCapacity is one technician's contribution to the day's capacity.
type TechCapacity struct {
	Score       int          `json:"score"` // 0-100
	OpenWindows []TimeWindow `json:"openWindows"`
}

// CapacityUICopy is the user-facing copy for a capacity state. It is produced by
// a pure lookup on the state and is never edited per request.
type CapacityUICopy struct {
	Headline string `json:"headline"`
	Subhead  string `json:"subhead"`
	CTA      string `json:"cta"`
	Badge    string `json:"badge,omitempty"`
	Urgent   bool   `json:"urgent"`
	Banner   string `json:"banner,omitempty"`
}

// CapacitySnapshot is the cached, per-calendar-day capacity read shared by the
// narrative and the UI widgets.
type CapacitySnapshot struct {
	OverallScore  int                     `json:"overallScore"` // 0-100
	OverallState  CapacityState           `json:"overallState"`
	PerTechnician map[string]TechCapacity `json:"perTechnician"`
	UICopy        CapacityUICopy          `json:"uiCopy"`
	ExpiresAt     time.Time               `json:"expiresAt"`
}

// FeeWaived reports whether the snapshot's state waives the dispatch fee.
func (s CapacitySnapshot) FeeWaived() bool {
	return s.OverallState == StateSameDayFeeWaived
}
