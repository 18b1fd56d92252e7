package models

import "time"

// TranscriptRecord is an archived conversation exported for audit and
// training-data curation.
type TranscriptRecord struct {
	SessionID     string        `bson:"_id" json:"sessionId"`
	Channel       Channel       `bson:"channel" json:"channel"`
	Outcome       string        `bson:"outcome" json:"outcome"` // e.g. "booked", "lead", "abandoned"
	SentimentHint string        `bson:"sentimentHint,omitempty" json:"sentimentHint,omitempty"`
	MessageCount  int           `bson:"messageCount" json:"messageCount"`
	Messages      []ChatMessage `bson:"messages" json:"messages"`
	ArchivedAt    time.Time     `bson:"archivedAt" json:"archivedAt"`
}

// ToolOutcome is the payload for the business-notification hook, fired exactly
// once per completed tool execution.
type ToolOutcome struct {
	SessionID     string  `json:"sessionId"`
	Channel       Channel `json:"channel"`
	Tool          string  `json:"tool"`
	Outcome       string  `json:"outcome"` // "success" or an error code
	SentimentHint string  `json:"sentimentHint,omitempty"`
}

// ReminderPayload schedules an appointment reminder through the task queue.
type ReminderPayload struct {
	JobID     string    `json:"jobId"`
	Phone     string    `json:"phone"`
	Channel   Channel   `json:"channel"`
	FireDate  time.Time `json:"fireDate"`
	Body      string    `json:"body"`
}
