package tools

import (
	"context"
	"fmt"
	"time"

	bookingRepo "fieldassist/database/repository/booking"
	"fieldassist/models"
	"fieldassist/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bookServiceCall commits the customer's chosen slot. The store's atomic
// check-and-commit guarantees at most one confirmation per slot; a lost race
// comes back as a ConflictError for the corrective narrative.
func (e *Executor) bookServiceCall(ctx context.Context, args *models.BookServiceCallArgs) (*models.BookingResult, error) {
	customerID := args.CustomerID
	if customerID == "" {
		customerID = uuid.New().String()
	}

	confirmation, err := e.Store.CommitBooking(ctx, bookingRepo.CommitRequest{
		SlotID:       args.SlotID,
		CustomerID:   customerID,
		CustomerName: args.CustomerName,
		Phone:        args.Phone,
		Address:      args.Address,
		ServiceType:  args.ServiceType,
		Description:  args.Description,
	})
	if err != nil {
		return nil, err
	}

	result := &models.BookingResult{
		Confirmation: confirmation,
		CustomerName: args.CustomerName,
		Phone:        args.Phone,
		Address:      args.Address,
		ServiceType:  args.ServiceType,
	}

	// FeeWaived was snapshotted when the slot was offered; collect the fee
	// only when it still applies. A payment failure must not unwind a
	// confirmed booking, so it only logs.
	if !confirmation.FeeWaived && e.Payments != nil {
		secret, err := e.Payments.CreateDispatchFeeIntent(ctx, confirmation.JobID, e.DispatchFeeCents)
		if err != nil {
			utils.GetLogger().Warn("dispatch fee intent failed",
				zap.String("jobId", confirmation.JobID), zap.Error(err))
		} else {
			result.PaymentClientSecret = secret
		}
	}

	if e.Scheduler != nil {
		fireAt := confirmation.ScheduledStart.Add(-2 * time.Hour)
		payload := models.ReminderPayload{
			JobID:    confirmation.JobID,
			Phone:    args.Phone,
			Channel:  models.ChannelSMS,
			FireDate: fireAt,
			Body: fmt.Sprintf("Reminder: your %s appointment starts around %s. Reply here or call us if anything changed.",
				args.ServiceType, confirmation.ScheduledStart.Format("Mon 3:04 PM")),
		}
		if err := e.Scheduler.ScheduleReminder(payload, fireAt); err != nil {
			utils.GetLogger().Warn("reminder scheduling failed",
				zap.String("jobId", confirmation.JobID), zap.Error(err))
		}
	}

	return result, nil
}
