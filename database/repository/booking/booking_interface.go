package booking

import (
	"context"

	"fieldassist/models"
)

// CommitRequest carries the customer details needed to finalize a booking.
// The fee-waived flag is snapshotted from the slot the customer selected.
type CommitRequest struct {
	SlotID       string
	CustomerID   string
	CustomerName string
	Phone        string
	Address      string
	ServiceType  string
	Description  string
}

// Store is the persistent booking collaborator. CommitBooking must atomically
// check-and-commit: a slot may be held by at most one confirmed booking, and a
// lost race yields a ConflictError rather than a second confirmation.
type Store interface {
	GetSlot(ctx context.Context, slotID string) (*models.Slot, error)
	// ListOpenSlots returns unbooked slots for a service type from the given
	// date forward, soonest first. When sameDayFeeWaived is true the store
	// stamps (and persists) the fee waiver on the date's slots, so the flag is
	// fixed at selection time rather than re-evaluated at confirmation.
	ListOpenSlots(ctx context.Context, serviceType, fromDate string, sameDayFeeWaived bool, limit int) ([]models.Slot, error)
	CommitBooking(ctx context.Context, req CommitRequest) (*models.BookingConfirmation, error)
	SaveLead(ctx context.Context, lead *models.Lead) error
}
