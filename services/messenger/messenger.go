package messenger

import (
	"context"

	"fieldassist/models"
	"fieldassist/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Messenger is the SMS/voice send primitive. The actual carrier integration is
// a collaborator; this interface is all the core depends on.
type Messenger interface {
	Send(ctx context.Context, channel models.Channel, recipient, text string) (models.DeliveryResult, error)
}

// LogMessenger records outbound messages to the log. Used for development and
// as the default until a carrier is wired in.
type LogMessenger struct{}

func (LogMessenger) Send(_ context.Context, channel models.Channel, recipient, text string) (models.DeliveryResult, error) {
	utils.GetLogger().Info("outbound message",
		zap.String("channel", string(channel)),
		zap.String("recipient", recipient),
		zap.Int("length", len(text)))
	return models.DeliveryResult{MessageID: uuid.New().String(), Accepted: true}, nil
}
