package notification

import (
	"context"
	"fmt"

	"fieldassist/models"
	"fieldassist/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMNotifier pushes tool outcomes to the office alert topic so dispatchers
// see bookings and emergencies as they happen.
type FCMNotifier struct {
	Client *messaging.Client
	Topic  string
}

func NewFCMNotifier(client *messaging.Client, topic string) *FCMNotifier {
	return &FCMNotifier{Client: client, Topic: topic}
}

func (n *FCMNotifier) NotifyToolOutcome(ctx context.Context, outcome models.ToolOutcome) error {
	msg := &messaging.Message{
		Topic: n.Topic,
		Notification: &messaging.Notification{
			Title: fmt.Sprintf("Assistant: %s (%s)", outcome.Tool, outcome.Outcome),
			Body:  fmt.Sprintf("session %s via %s", outcome.SessionID, outcome.Channel),
		},
		Data: map[string]string{
			"sessionId":     outcome.SessionID,
			"channel":       string(outcome.Channel),
			"tool":          outcome.Tool,
			"outcome":       outcome.Outcome,
			"sentimentHint": outcome.SentimentHint,
		},
	}

	response, err := n.Client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("NotifyToolOutcome: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("NotifyToolOutcome: sent " + response)
	return nil
}
