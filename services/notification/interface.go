package notification

import (
	"context"

	"fieldassist/models"
)

// Notifier is the business-notification hook. The orchestration layer fires it
// exactly once per completed tool execution; what the receiver does with the
// outcome is out of scope here.
type Notifier interface {
	NotifyToolOutcome(ctx context.Context, outcome models.ToolOutcome) error
}

// Noop discards notifications. Used in tests and when FCM is not configured.
type Noop struct{}

func (Noop) NotifyToolOutcome(context.Context, models.ToolOutcome) error { return nil }
