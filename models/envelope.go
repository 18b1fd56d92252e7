package models

// WidgetBinding maps a tool to the UI template that renders its envelope.
type WidgetBinding struct {
	TemplateID          string `json:"templateId"`
	IsAccessibleToModel bool   `json:"isAccessibleToModel"`
}

// ResponseEnvelope is the three-part result of a tool execution.
//
// StructuredContent is visible to both the model and the UI and is size-capped
// per tool. Narrative is the sentence the model (and user) reads. PrivateMeta is
// UI-only and must never be serialized back into a model prompt.
type ResponseEnvelope struct {
	StructuredContent map[string]any `json:"structuredContent"`
	Narrative         string         `json:"narrative"`
	PrivateMeta       map[string]any `json:"privateMeta,omitempty"`
	CorrelationID     string         `json:"correlationId"`
	Success           bool           `json:"success"`
	Widget            *WidgetBinding `json:"widget,omitempty"`
}
