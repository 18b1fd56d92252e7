package envelope

import (
	"strings"
	"testing"

	"fieldassist/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardMarkerRoundTrip(t *testing.T) {
	env := models.ResponseEnvelope{
		StructuredContent: map[string]any{"job_id": "job-1"},
		Narrative:         "You're booked.",
		PrivateMeta:       map[string]any{"phone": "555-0133"},
		CorrelationID:     "corr-1",
		Success:           true,
	}

	marker := CardMarker(env)
	require.True(t, strings.HasPrefix(marker, cardOpen))
	require.True(t, strings.HasSuffix(marker, cardClose))
	assert.Contains(t, marker, "job-1")
}

func TestStripCardMarkersRemovesEverything(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"single marker",
			"You're booked for Wednesday. [[card]]{\"job_id\":\"job-1\"}[[/card]]",
			"You're booked for Wednesday.",
		},
		{
			"multiple markers",
			"[[card]]{\"a\":1}[[/card]] Two options. [[card]]{\"b\":2}[[/card]]",
			"Two options.",
		},
		{
			"payload with newlines",
			"See below.\n[[card]]{\n\"a\": 1\n}[[/card]]",
			"See below.",
		},
		{
			"no markers",
			"Plain prose stays untouched.",
			"Plain prose stays untouched.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := StripCardMarkers(tc.in)
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, cardOpen)
			assert.NotContains(t, got, cardClose)
			assert.NotContains(t, got, "job_id")
		})
	}
}
