package tasks

import (
	"encoding/json"
	"time"

	"fieldassist/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSendReminder      = "reminder:send"
	TypeArchiveTranscript = "transcript:archive"
)

// NewReminderTask schedules an appointment reminder for delivery at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ArchivePayload names the session whose transcript should be exported.
type ArchivePayload struct {
	SessionID string `json:"sessionId"`
}

// NewArchiveTranscriptTask queues a transcript export for a finished session.
// Sessions expire out of the cache, so archiving runs shortly after the
// session TTL rather than immediately.
func NewArchiveTranscriptTask(sessionID string, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ArchivePayload{SessionID: sessionID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeArchiveTranscript, b)
	opts := []asynq.Option{asynq.ProcessIn(delay), asynq.MaxRetry(3)}

	return task, opts, nil
}
