package tools

import (
	"context"
	"time"

	"fieldassist/models"
)

const slotSearchLimit = 30

// searchAvailability finds the soonest open slots for a service, consulting
// the capacity snapshot so same-day slots carry the fee-waived flag the
// customer was shown.
func (e *Executor) searchAvailability(ctx context.Context, args *models.SearchAvailabilityArgs) (*models.AvailabilityResult, error) {
	snapshot := e.Capacity.Snapshot(ctx)

	fromDate := args.Date
	today := time.Now().Format("2006-01-02")
	if fromDate == "" {
		fromDate = today
	}
	sameDayWaived := fromDate == today && snapshot.FeeWaived()

	slots, err := e.Store.ListOpenSlots(ctx, args.ServiceType, fromDate, sameDayWaived, slotSearchLimit)
	if err != nil {
		return nil, err
	}

	return &models.AvailabilityResult{
		ServiceType: args.ServiceType,
		Slots:       slots,
		FeeWaived:   sameDayWaived,
		Capacity:    snapshot.OverallState,
	}, nil
}
