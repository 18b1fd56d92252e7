package orchestrator

import "strings"

// EmergencyClassifier decides whether a narrative describes an emergency. It
// is a standalone policy so alternatives can be swapped in and tested on
// their own.
type EmergencyClassifier func(narrative string) bool

var emergencyKeywords = []string{
	"burst pipe",
	"flooding",
	"flooded",
	"gas leak",
	"smell gas",
	"sewage back",
	"no heat",
	"water everywhere",
	"emergency",
}

// KeywordEmergencyClassifier flags narratives containing any known emergency
// phrase. Greetings and plain scheduling chatter never match.
func KeywordEmergencyClassifier(narrative string) bool {
	lower := strings.ToLower(narrative)
	for _, kw := range emergencyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
