package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fieldassist/config"
	"fieldassist/database/repository/transcript"
	"fieldassist/models"
	"fieldassist/services/messenger"
	"fieldassist/services/orchestrator"
	"fieldassist/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitTaskWorker runs the async worker in background.
func InitTaskWorker(msgr messenger.Messenger, sessions orchestrator.SessionStore, transcripts transcript.Repository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(msgr))
	mux.HandleFunc(tasks.TypeArchiveTranscript, handleArchiveTask(sessions, transcripts))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[TaskWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[TaskWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[TaskWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(msgr messenger.Messenger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] ⏰ Sending reminder for job %s → %s", p.JobID, p.Phone)

		channel := p.Channel
		if channel == "" {
			channel = models.ChannelSMS
		}
		if _, err := msgr.Send(ctx, channel, p.Phone, p.Body); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

func handleArchiveTask(sessions orchestrator.SessionStore, transcripts transcript.Repository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ArchivePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ArchiveHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		session, err := sessions.Get(ctx, p.SessionID)
		if err != nil {
			log.Printf("[ArchiveHandler] ❌ Failed to load session %s: %v", p.SessionID, err)
			return err
		}
		if session == nil {
			// Session already expired without us capturing it. Nothing to
			// retry.
			log.Printf("[ArchiveHandler] ⚠️ Session %s expired before archiving", p.SessionID)
			return nil
		}

		record := &models.TranscriptRecord{
			SessionID:     session.SessionID,
			Channel:       session.Channel,
			Outcome:       sessionOutcome(session),
			SentimentHint: sessionSentiment(session),
			MessageCount:  len(session.MessageLog),
			Messages:      session.MessageLog,
			ArchivedAt:    time.Now().UTC(),
		}
		if err := transcripts.Archive(ctx, record); err != nil {
			log.Printf("[ArchiveHandler] ❌ Failed to archive session %s: %v", p.SessionID, err)
			return err
		}
		return nil
	}
}

// sessionOutcome classifies a finished conversation by the last tool that ran.
func sessionOutcome(session *models.ConversationSession) string {
	outcome := "abandoned"
	for _, msg := range session.MessageLog {
		if msg.Role != models.RoleTool {
			continue
		}
		switch msg.ToolName {
		case models.ToolBookServiceCall:
			outcome = "booked"
		case models.ToolCaptureLead:
			if outcome != "booked" {
				outcome = "lead"
			}
		}
	}
	return outcome
}

// sessionSentiment derives a coarse mood signal from tool results. An
// emergency consult marks the whole conversation urgent; a completed booking
// reads positive; any failed tool reads negative unless a booking landed.
func sessionSentiment(session *models.ConversationSession) string {
	sentiment := "neutral"
	for _, msg := range session.MessageLog {
		if msg.Role != models.RoleTool {
			continue
		}
		if msg.ToolName == models.ToolEmergencyGuidance {
			return "urgent"
		}
		var payload struct {
			Success bool `json:"success"`
		}
		if err := json.Unmarshal([]byte(msg.Content), &payload); err != nil {
			continue
		}
		switch {
		case payload.Success && msg.ToolName == models.ToolBookServiceCall:
			sentiment = "positive"
		case !payload.Success && sentiment != "positive":
			sentiment = "negative"
		}
	}
	return sentiment
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[TaskWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
