package envelope

import (
	"encoding/json"
	"regexp"
	"strings"

	"fieldassist/models"
)

// Card markers delimit structured-card payloads embedded in a web narrative.
// SMS and voice channels must never carry them.
const (
	cardOpen  = "[[card]]"
	cardClose = "[[/card]]"
)

var cardMarkerRe = regexp.MustCompile(`(?s)\[\[card\]\].*?\[\[/card\]\]`)

// CardMarker renders an envelope as a delimited structured-card marker suitable
// for appending to a web narrative.
func CardMarker(env models.ResponseEnvelope) string {
	payload, err := json.Marshal(env)
	if err != nil {
		return ""
	}
	return cardOpen + string(payload) + cardClose
}

// StripCardMarkers removes every card marker (and its payload) from text,
// leaving plain prose.
func StripCardMarkers(text string) string {
	stripped := cardMarkerRe.ReplaceAllString(text, "")
	return strings.TrimSpace(stripped)
}
