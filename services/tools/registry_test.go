package tools

import (
	"encoding/json"
	"testing"

	"fieldassist/models"
	"fieldassist/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawArgs(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestDecodeArgsTyped(t *testing.T) {
	call := models.ToolCall{
		Name: models.ToolBookServiceCall,
		Args: rawArgs(t, map[string]any{
			"slot_id":       "slot-1",
			"customer_name": "Pat Winters",
			"phone":         "555-0133",
			"address":       "18 Alder Ct",
			"service_type":  "drain_cleaning",
		}),
	}

	decoded, err := decodeArgs(call)
	require.NoError(t, err)
	args, ok := decoded.(*models.BookServiceCallArgs)
	require.True(t, ok)
	assert.Equal(t, "slot-1", args.SlotID)
	assert.Equal(t, "Pat Winters", args.CustomerName)
}

func TestDecodeArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		call models.ToolCall
	}{
		{
			"unknown tool",
			models.ToolCall{Name: "cancel_subscription"},
		},
		{
			"missing required field",
			models.ToolCall{Name: models.ToolSearchAvailability, Args: rawArgs(t, map[string]any{"urgent": true})},
		},
		{
			"malformed json",
			models.ToolCall{Name: models.ToolGetQuote, Args: json.RawMessage(`{"service_type":`)},
		},
		{
			"bad enum value",
			models.ToolCall{Name: models.ToolGetQuote, Args: rawArgs(t, map[string]any{"service_type": "x", "property_type": "industrial"})},
		},
		{
			"short zip code",
			models.ToolCall{Name: models.ToolCheckServiceArea, Args: rawArgs(t, map[string]any{"zip_code": "21"})},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeArgs(tc.call)
			require.Error(t, err)
			assert.True(t, utils.IsValidation(err), "want ValidationError, got %T", err)
		})
	}
}

func TestSchemasCoverEveryTool(t *testing.T) {
	schemas := Schemas()
	require.Len(t, schemas, len(registry))
	for _, s := range schemas {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Description)
	}
}
