package booking

import (
	"context"
	"testing"

	"fieldassist/models"
	"fieldassist/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore() *MemoryStore {
	s := NewMemoryStore()
	s.AddSlot(models.Slot{ID: "s1", Date: "2026-03-05", Start: 9 * 60, End: 11 * 60, ServiceType: "drain_cleaning"})
	s.AddSlot(models.Slot{ID: "s2", Date: "2026-03-04", Start: 14 * 60, End: 16 * 60, ServiceType: "drain_cleaning"})
	s.AddSlot(models.Slot{ID: "s3", Date: "2026-03-04", Start: 9 * 60, End: 11 * 60, ServiceType: "drain_cleaning"})
	s.AddSlot(models.Slot{ID: "s4", Date: "2026-03-04", Start: 9 * 60, End: 11 * 60, ServiceType: "water_heater_repair"})
	s.AddSlot(models.Slot{ID: "s5", Date: "2026-03-03", Start: 9 * 60, End: 11 * 60, ServiceType: "drain_cleaning"})
	return s
}

func TestListOpenSlotsSoonestFirst(t *testing.T) {
	s := seedStore()

	slots, err := s.ListOpenSlots(context.Background(), "drain_cleaning", "2026-03-04", false, 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		ids = append(ids, slot.ID)
	}
	// Past dates and other services are excluded; results sort by date, then start.
	assert.Equal(t, []string{"s3", "s2", "s1"}, ids)
}

func TestListOpenSlotsStampsFeeWaiverOnRequestedDayOnly(t *testing.T) {
	s := seedStore()

	slots, err := s.ListOpenSlots(context.Background(), "drain_cleaning", "2026-03-04", true, 10)
	require.NoError(t, err)

	for _, slot := range slots {
		if slot.Date == "2026-03-04" {
			assert.True(t, slot.FeeWaived, "slot %s", slot.ID)
		} else {
			assert.False(t, slot.FeeWaived, "slot %s", slot.ID)
		}
	}

	// The stamp persists: a later commit reads the stored flag.
	confirmation, err := s.CommitBooking(context.Background(), CommitRequest{SlotID: "s3", CustomerName: "Pat Winters"})
	require.NoError(t, err)
	assert.True(t, confirmation.FeeWaived)
}

func TestCommitBookingConflictOnBookedSlot(t *testing.T) {
	s := seedStore()

	_, err := s.CommitBooking(context.Background(), CommitRequest{SlotID: "s2", CustomerName: "Pat Winters"})
	require.NoError(t, err)

	_, err = s.CommitBooking(context.Background(), CommitRequest{SlotID: "s2", CustomerName: "Lee Ashford"})
	require.Error(t, err)
	assert.True(t, utils.IsConflict(err))

	// A booked slot disappears from availability.
	slots, err := s.ListOpenSlots(context.Background(), "drain_cleaning", "2026-03-04", false, 10)
	require.NoError(t, err)
	for _, slot := range slots {
		assert.NotEqual(t, "s2", slot.ID)
	}
}

func TestSaveLeadAssignsID(t *testing.T) {
	s := NewMemoryStore()

	lead := &models.Lead{Name: "Pat Winters", Phone: "555-0133"}
	require.NoError(t, s.SaveLead(context.Background(), lead))

	saved := s.Leads()
	require.Len(t, saved, 1)
	assert.NotEmpty(t, saved[0].ID)
	assert.False(t, saved[0].CreatedAt.IsZero())
}
