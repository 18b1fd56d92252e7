package orchestrator

import (
	"fieldassist/models"
	"fieldassist/services/envelope"

	"github.com/google/uuid"
)

// OutboundMessage is what a channel actually transmits.
type OutboundMessage struct {
	Channel  models.Channel           `json:"channel"`
	Text     string                   `json:"text"`
	Envelope *models.ResponseEnvelope `json:"envelope,omitempty"`
}

// ChannelAdapter applies channel-specific rendering rules to the final
// narrative/envelope pair. It is a pure post-processing stage: no tool calls,
// no session mutation.
type ChannelAdapter struct {
	Classify     EmergencyClassifier
	CompanyPhone string
}

func NewChannelAdapter(classify EmergencyClassifier, companyPhone string) *ChannelAdapter {
	if classify == nil {
		classify = KeywordEmergencyClassifier
	}
	return &ChannelAdapter{Classify: classify, CompanyPhone: companyPhone}
}

// Render produces the outbound message for a channel.
//
// Web gets the narrative plus an embedded structured-card marker; when the
// narrative reads like an emergency and no emergency envelope was attached by
// a tool call, a default guidance card is synthesized. SMS and voice transmit
// plain prose only, with every card marker stripped.
func (a *ChannelAdapter) Render(channel models.Channel, narrative string, env *models.ResponseEnvelope) OutboundMessage {
	switch channel {
	case models.ChannelSMS, models.ChannelVoice:
		return OutboundMessage{
			Channel: channel,
			Text:    envelope.StripCardMarkers(narrative),
		}
	default:
		if env == nil && a.Classify(narrative) {
			synthesized := a.defaultEmergencyEnvelope()
			env = &synthesized
		}
		text := narrative
		if env != nil {
			text = narrative + "\n\n" + envelope.CardMarker(*env)
		}
		return OutboundMessage{Channel: channel, Text: text, Envelope: env}
	}
}

// defaultEmergencyEnvelope is the synthesized guidance card for narratives the
// classifier flags when no tool produced one.
func (a *ChannelAdapter) defaultEmergencyEnvelope() models.ResponseEnvelope {
	correlationID := uuid.New().String()
	return models.ResponseEnvelope{
		StructuredContent: map[string]any{
			"correlation_id": correlationID,
			"phone":          a.CompanyPhone,
			"situation":      "possible emergency",
		},
		Narrative: "If this is an emergency, call us now at " + a.CompanyPhone + ".",
		PrivateMeta: map[string]any{
			"correlation_id": correlationID,
			"steps": []string{
				"Shut off the affected water or gas line if you can do so safely.",
				"Keep everyone clear of the area.",
			},
		},
		CorrelationID: correlationID,
		Success:       true,
		Widget:        envelope.BindingFor(models.ToolEmergencyGuidance),
	}
}
