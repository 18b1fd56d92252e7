package tools

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "fieldassist/database/repository/booking"
	"fieldassist/models"
	"fieldassist/services/capacity"
	"fieldassist/services/notification"
	"fieldassist/services/payment"
	"fieldassist/services/tasks"
	"fieldassist/utils"

	"go.uber.org/zap"
)

// Executor validates a tool call's arguments against its typed schema and
// dispatches to the matching domain action.
type Executor struct {
	Capacity         *capacity.Engine
	Store            bookingRepo.Store
	Payments         payment.FeePayments
	Notifier         notification.Notifier
	Scheduler        *tasks.Scheduler
	CompanyPhone     string
	DispatchFeeCents int64
}

// Execute runs one tool call for a session. The business-notification hook
// fires exactly once per completed execution, success or not.
func (e *Executor) Execute(ctx context.Context, sessionID string, channel models.Channel, call models.ToolCall) (result any, err error) {
	defer func() {
		e.notify(sessionID, channel, call.Name, result, err)
	}()

	args, err := decodeArgs(call)
	if err != nil {
		utils.GetLogger().Warn("tool call failed validation",
			zap.String("tool", call.Name),
			zap.String("correlationId", call.CorrelationID),
			zap.Error(err))
		return nil, err
	}

	switch a := args.(type) {
	case *models.SearchAvailabilityArgs:
		result, err = e.searchAvailability(ctx, a)
	case *models.BookServiceCallArgs:
		result, err = e.bookServiceCall(ctx, a)
	case *models.GetQuoteArgs:
		result = e.getQuote(a)
	case *models.EmergencyGuidanceArgs:
		result = e.emergencyGuidance(a)
	case *models.ListServicesArgs:
		result = e.listServices(a)
	case *models.CaptureLeadArgs:
		result, err = e.captureLead(ctx, a)
	case *models.CheckServiceAreaArgs:
		result = e.checkServiceArea(a)
	default:
		err = fmt.Errorf("no action registered for tool %q", call.Name)
	}

	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = &utils.UpstreamTimeout{Upstream: call.Name, Err: err}
	}
	return result, err
}

// notify fires the business-notification hook. Hook failures only log; they
// never affect the tool result.
func (e *Executor) notify(sessionID string, channel models.Channel, tool string, result any, execErr error) {
	if e.Notifier == nil {
		return
	}
	outcome := models.ToolOutcome{
		SessionID:     sessionID,
		Channel:       channel,
		Tool:          tool,
		Outcome:       "success",
		SentimentHint: "neutral",
	}
	switch {
	case execErr != nil && utils.IsConflict(execErr):
		outcome.Outcome = "conflict"
		outcome.SentimentHint = "negative"
	case execErr != nil && utils.IsValidation(execErr):
		outcome.Outcome = "invalid_arguments"
	case execErr != nil:
		outcome.Outcome = "error"
		outcome.SentimentHint = "negative"
	case tool == models.ToolBookServiceCall:
		outcome.SentimentHint = "positive"
	case tool == models.ToolEmergencyGuidance:
		outcome.SentimentHint = "urgent"
	}

	if err := e.Notifier.NotifyToolOutcome(context.Background(), outcome); err != nil {
		utils.GetLogger().Warn("business notification failed",
			zap.String("tool", tool), zap.Error(err))
	}
}
