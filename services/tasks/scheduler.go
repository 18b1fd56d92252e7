package tasks

import (
	"fmt"
	"time"

	"fieldassist/models"

	"github.com/hibiken/asynq"
)

// Scheduler enqueues background work onto the task queue.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler(redisOpt asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{client: asynq.NewClient(redisOpt)}
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}

// ScheduleReminder queues an appointment reminder for delivery at fireAt.
func (s *Scheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}

// ScheduleArchive queues a transcript export after delay. Repeats for the same
// session are harmless; the archive upserts, so the last run wins with the
// complete transcript.
func (s *Scheduler) ScheduleArchive(sessionID string, delay time.Duration) error {
	task, opts, err := NewArchiveTranscriptTask(sessionID, delay)
	if err != nil {
		return fmt.Errorf("failed to build archive task: %w", err)
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue archive task: %w", err)
	}
	return nil
}
