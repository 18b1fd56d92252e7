package capacity

import "fieldassist/models"

// uiCopyTable is the single source of user-facing copy per capacity state.
// Copy is a pure function of the state and is never edited per request.
var uiCopyTable = map[models.CapacityState]models.CapacityUICopy{
	models.StateSameDayFeeWaived: {
		Headline: "Technicians available today",
		Subhead:  "Book now and we'll waive the dispatch fee.",
		CTA:      "Book same-day service",
		Badge:    "Fee waived today",
		Urgent:   false,
	},
	models.StateLimitedSameDay: {
		Headline: "A few same-day openings left",
		Subhead:  "Today's schedule is filling up fast.",
		CTA:      "Grab a remaining slot",
		Badge:    "Limited availability",
		Urgent:   true,
	},
	models.StateNextDay: {
		Headline: "Next-day appointments available",
		Subhead:  "We can have a technician out tomorrow morning.",
		CTA:      "Schedule for tomorrow",
		Urgent:   false,
	},
	models.StateEmergencyOnly: {
		Headline: "Emergency service only",
		Subhead:  "Today's routine schedule is full, but our emergency crew is standing by.",
		CTA:      "Request emergency service",
		Urgent:   true,
		Banner:   "Emergency dispatch available 24/7",
	},
	models.StateWeekendEmergency: {
		Headline: "Weekend emergency service",
		Subhead:  "Routine visits resume Monday; emergencies are covered all weekend.",
		CTA:      "Call our emergency line",
		Urgent:   true,
		Banner:   "Emergency dispatch available 24/7",
	},
	models.StateHoliday: {
		Headline: "Holiday hours in effect",
		Subhead:  "The office is closed today; emergency crews remain on call.",
		CTA:      "Call our emergency line",
		Urgent:   true,
		Banner:   "Emergency dispatch available 24/7",
	},
	models.StateAfterCutoff: {
		Headline: "Today's schedule is closed",
		Subhead:  "Book now for priority placement tomorrow.",
		CTA:      "Schedule for tomorrow",
		Urgent:   false,
	},
}

// CopyFor returns the UI copy for a state.
func CopyFor(state models.CapacityState) models.CapacityUICopy {
	return uiCopyTable[state]
}
