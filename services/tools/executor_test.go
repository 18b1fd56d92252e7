package tools

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	bookingRepo "fieldassist/database/repository/booking"
	"fieldassist/models"
	"fieldassist/services/capacity"
	"fieldassist/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct {
	mu       sync.Mutex
	outcomes []models.ToolOutcome
}

func (n *countingNotifier) NotifyToolOutcome(_ context.Context, outcome models.ToolOutcome) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outcomes = append(n.outcomes, outcome)
	return nil
}

type fixedSource struct {
	techs   []string
	windows []models.TimeWindow
}

func (f *fixedSource) ListTechnicians(context.Context, string) ([]string, error) {
	return f.techs, nil
}

func (f *fixedSource) GetOpenWindows(context.Context, string, string) ([]models.TimeWindow, error) {
	return f.windows, nil
}

func busyEngine() *capacity.Engine {
	eng := capacity.NewEngine(&fixedSource{
		techs:   []string{"alice", "bob"},
		windows: []models.TimeWindow{{Start: 9 * 60, End: 16 * 60}},
	}, capacity.USHolidayCalendar{}, 16, 5*time.Minute)
	eng.Now = func() time.Time {
		return time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)
	}
	return eng
}

func bookCall(t *testing.T, slotID, name string) models.ToolCall {
	t.Helper()
	args, err := json.Marshal(map[string]any{
		"slot_id":       slotID,
		"customer_name": name,
		"phone":         "555-0133",
		"address":       "18 Alder Ct",
		"service_type":  "drain_cleaning",
	})
	require.NoError(t, err)
	return models.ToolCall{Name: models.ToolBookServiceCall, CorrelationID: "corr-1", Args: args}
}

func TestExecuteConcurrentBookingOneWinner(t *testing.T) {
	store := bookingRepo.NewMemoryStore()
	store.AddSlot(models.Slot{
		ID:          "slot-1",
		Date:        "2026-03-04",
		Start:       10 * 60,
		End:         12 * 60,
		ServiceType: "drain_cleaning",
	})
	exec := &Executor{Store: store, CompanyPhone: "(555) 014-0199"}

	var wg sync.WaitGroup
	var confirmations, conflicts atomic.Int32
	for _, name := range []string{"Pat Winters", "Lee Ashford"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			result, err := exec.Execute(context.Background(), "sess-"+name, models.ChannelWeb, bookCall(t, "slot-1", name))
			switch {
			case err == nil:
				booking, ok := result.(*models.BookingResult)
				if assert.True(t, ok) && assert.NotNil(t, booking.Confirmation) {
					confirmations.Add(1)
				}
			case utils.IsConflict(err):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(name)
	}
	wg.Wait()

	assert.EqualValues(t, 1, confirmations.Load())
	assert.EqualValues(t, 1, conflicts.Load())
}

func TestExecuteRejectsInvalidArguments(t *testing.T) {
	exec := &Executor{Store: bookingRepo.NewMemoryStore()}
	call := models.ToolCall{Name: models.ToolBookServiceCall, Args: json.RawMessage(`{"slot_id":"slot-1"}`)}

	_, err := exec.Execute(context.Background(), "sess-1", models.ChannelWeb, call)
	require.Error(t, err)
	assert.True(t, utils.IsValidation(err))
}

func TestExecuteNotifiesExactlyOnce(t *testing.T) {
	store := bookingRepo.NewMemoryStore()
	store.AddSlot(models.Slot{ID: "slot-1", Date: "2026-03-04", Start: 600, End: 720, ServiceType: "drain_cleaning"})
	notifier := &countingNotifier{}
	exec := &Executor{Store: store, Notifier: notifier}

	_, err := exec.Execute(context.Background(), "sess-1", models.ChannelWeb, bookCall(t, "slot-1", "Pat Winters"))
	require.NoError(t, err)

	// Second attempt on the same slot fails; the hook still fires once.
	_, err = exec.Execute(context.Background(), "sess-2", models.ChannelWeb, bookCall(t, "slot-1", "Lee Ashford"))
	require.Error(t, err)

	require.Len(t, notifier.outcomes, 2)
	assert.Equal(t, "success", notifier.outcomes[0].Outcome)
	assert.Equal(t, "positive", notifier.outcomes[0].SentimentHint)
	assert.Equal(t, "conflict", notifier.outcomes[1].Outcome)
	assert.Equal(t, "negative", notifier.outcomes[1].SentimentHint)
}

func TestSearchAvailabilityStampsFeeWaiver(t *testing.T) {
	store := bookingRepo.NewMemoryStore()
	today := time.Now().Format("2006-01-02")
	store.AddSlot(models.Slot{ID: "slot-1", Date: today, Start: 14 * 60, End: 16 * 60, ServiceType: "drain_cleaning"})
	exec := &Executor{Capacity: busyEngine(), Store: store}

	result, err := exec.searchAvailability(context.Background(), &models.SearchAvailabilityArgs{ServiceType: "drain_cleaning"})
	require.NoError(t, err)
	assert.True(t, result.FeeWaived)
	require.Len(t, result.Slots, 1)
	assert.True(t, result.Slots[0].FeeWaived, "waiver is stamped on the slot at offer time")

	// The stamped waiver survives to commit without re-evaluation.
	confirmation, err := store.CommitBooking(context.Background(), bookingRepo.CommitRequest{SlotID: "slot-1", CustomerName: "Pat Winters"})
	require.NoError(t, err)
	assert.True(t, confirmation.FeeWaived)
}

func TestGetQuoteAppliesMultipliers(t *testing.T) {
	exec := &Executor{}

	base := exec.getQuote(&models.GetQuoteArgs{ServiceType: "drain_cleaning"})
	urgent := exec.getQuote(&models.GetQuoteArgs{ServiceType: "drain_cleaning", Urgent: true})

	require.NotNil(t, base)
	require.NotNil(t, urgent)
	assert.Greater(t, urgent.PriceLow, base.PriceLow)
	assert.Greater(t, urgent.PriceHigh, base.PriceHigh)
}
