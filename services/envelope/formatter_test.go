package envelope

import (
	"fmt"
	"testing"
	"time"

	"fieldassist/models"
	"fieldassist/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhone = "(555) 014-0199"

func testCall(name string) models.ToolCall {
	return models.ToolCall{Name: name, CorrelationID: "corr-1"}
}

func TestFormatBookingKeepsCustomerDataPrivate(t *testing.T) {
	f := NewFormatter(testPhone)
	start := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	result := &models.BookingResult{
		Confirmation: &models.BookingConfirmation{
			JobID:                "job-1",
			SlotID:               "slot-1",
			ScheduledStart:       start,
			ScheduledEnd:         start.Add(2 * time.Hour),
			ArrivalWindowMinutes: 120,
			FeeWaived:            true,
		},
		CustomerName:        "Pat Winters",
		Phone:               "555-0133",
		Address:             "18 Alder Ct",
		ServiceType:         "drain_cleaning",
		PaymentClientSecret: "pi_secret_abc",
	}

	env := f.Format(testCall(models.ToolBookServiceCall), result)

	assert.True(t, env.Success)
	assert.Equal(t, "corr-1", env.CorrelationID)
	assert.Equal(t, "corr-1", env.StructuredContent["correlation_id"])
	assert.Equal(t, "corr-1", env.PrivateMeta["correlation_id"])
	assert.Equal(t, "job-1", env.StructuredContent["job_id"])
	assert.Contains(t, env.Narrative, "booked")
	assert.Contains(t, env.Narrative, "waived")

	// PII and payment material never reach StructuredContent.
	for key, value := range env.StructuredContent {
		assert.NotEqual(t, "Pat Winters", value, "leaked name under %q", key)
		assert.NotEqual(t, "555-0133", value, "leaked phone under %q", key)
		assert.NotEqual(t, "18 Alder Ct", value, "leaked address under %q", key)
		assert.NotEqual(t, "pi_secret_abc", value, "leaked payment secret under %q", key)
	}
	assert.Equal(t, "Pat Winters", env.PrivateMeta["customer_name"])
	assert.Equal(t, "555-0133", env.PrivateMeta["phone"])
	assert.Equal(t, "pi_secret_abc", env.PrivateMeta["payment_client_secret"])
}

func TestFormatAvailabilityNoSlots(t *testing.T) {
	f := NewFormatter(testPhone)
	result := &models.AvailabilityResult{
		ServiceType: "water_heater_repair",
		Capacity:    models.StateNextDay,
	}

	env := f.Format(testCall(models.ToolSearchAvailability), result)

	assert.False(t, env.Success)
	assert.Equal(t, "no_availability", env.StructuredContent["error_code"])
	assert.Contains(t, env.Narrative, testPhone)
	assert.NotEmpty(t, env.Narrative)
}

func TestFormatAvailabilityCapsVisibleSlots(t *testing.T) {
	f := NewFormatter(testPhone)
	slots := make([]models.Slot, 12)
	for i := range slots {
		slots[i] = models.Slot{
			ID:           fmt.Sprintf("slot-%d", i),
			TechnicianID: "alice",
			Date:         "2026-03-04",
			Start:        9*60 + i*30,
			End:          9*60 + i*30 + 30,
		}
	}
	result := &models.AvailabilityResult{ServiceType: "drain_cleaning", Slots: slots, FeeWaived: true, Capacity: models.StateSameDayFeeWaived}

	env := f.Format(testCall(models.ToolSearchAvailability), result)

	require.True(t, env.Success)
	assert.Equal(t, 12, env.StructuredContent["total_slots"])
	visible, ok := env.StructuredContent["slots"].([]map[string]any)
	require.True(t, ok)
	assert.Len(t, visible, maxVisibleSlots)
	// Technician assignments are UI-only.
	for _, s := range visible {
		_, hasTech := s["technician_id"]
		assert.False(t, hasTech)
	}
	all, ok := env.PrivateMeta["all_slots"].([]models.Slot)
	require.True(t, ok)
	assert.Len(t, all, 12)
}

func TestFormatErrorTaxonomy(t *testing.T) {
	f := NewFormatter(testPhone)
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"validation", &utils.ValidationError{Field: "slot_id", Reason: "required"}, "invalid_arguments"},
		{"conflict", &utils.ConflictError{SlotID: "slot-1"}, "slot_taken"},
		{"timeout", &utils.UpstreamTimeout{Upstream: "scheduler"}, "upstream_timeout"},
		{"unknown", fmt.Errorf("boom"), "internal_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := f.FormatError(testCall(models.ToolBookServiceCall), tc.err)
			assert.False(t, env.Success)
			assert.Equal(t, tc.wantCode, env.StructuredContent["error_code"])
			assert.NotEmpty(t, env.Narrative, "error envelopes still carry a corrective narrative")
		})
	}
}

func TestFormatEmergencyBinding(t *testing.T) {
	f := NewFormatter(testPhone)
	env := f.Format(testCall(models.ToolEmergencyGuidance), &models.EmergencyGuidance{
		Situation: "gas_leak",
		Steps:     []string{"Leave the building immediately.", "Do not flip any switches."},
		Phone:     testPhone,
	})

	require.NotNil(t, env.Widget)
	assert.False(t, env.Widget.IsAccessibleToModel)
	assert.Contains(t, env.Narrative, testPhone)
}

func TestMinutesToClock(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "12:00 AM"},
		{9 * 60, "9:00 AM"},
		{12 * 60, "12:00 PM"},
		{16*60 + 30, "4:30 PM"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, minutesToClock(tc.minutes))
	}
}
