package tools

import (
	"encoding/json"
	"fmt"

	"fieldassist/models"
	"fieldassist/services/intelligence"
	"fieldassist/utils"
)

// toolSpec couples a tool's completion-provider schema with the decoder that
// turns raw args into the tool's validated, typed argument struct.
type toolSpec struct {
	schema intelligence.ToolSchema
	decode func(raw json.RawMessage) (any, error)
}

var registry = map[string]toolSpec{
	models.ToolSearchAvailability: {
		schema: intelligence.ToolSchema{
			Name:        models.ToolSearchAvailability,
			Description: "Find open appointment slots for a service type. Returns the soonest openings.",
			Parameters: map[string]intelligence.ParamSpec{
				"service_type": {Type: "string", Description: "Kind of work needed, e.g. 'water heater repair'"},
				"date":         {Type: "string", Description: "Preferred date YYYY-MM-DD; omit for soonest"},
				"urgent":       {Type: "boolean", Description: "True when the customer needs same-day help"},
			},
			Required: []string{"service_type"},
		},
		decode: decodeInto[models.SearchAvailabilityArgs](func(a *models.SearchAvailabilityArgs) error {
			if a.ServiceType == "" {
				return utils.NewValidationError("service_type", "required")
			}
			return nil
		}),
	},
	models.ToolBookServiceCall: {
		schema: intelligence.ToolSchema{
			Name:        models.ToolBookServiceCall,
			Description: "Book a specific slot returned by search_availability for a customer.",
			Parameters: map[string]intelligence.ParamSpec{
				"slot_id":       {Type: "string", Description: "Slot id from a prior availability search"},
				"customer_id":   {Type: "string", Description: "Customer id if known; otherwise omit"},
				"customer_name": {Type: "string", Description: "Customer's full name"},
				"phone":         {Type: "string", Description: "Callback phone number"},
				"address":       {Type: "string", Description: "Service address"},
				"service_type":  {Type: "string", Description: "Kind of work needed"},
				"description":   {Type: "string", Description: "Short problem description"},
			},
			Required: []string{"slot_id", "customer_name", "phone", "address", "service_type"},
		},
		decode: decodeInto[models.BookServiceCallArgs](func(a *models.BookServiceCallArgs) error {
			switch {
			case a.SlotID == "":
				return utils.NewValidationError("slot_id", "required")
			case a.CustomerName == "":
				return utils.NewValidationError("customer_name", "required")
			case a.Phone == "":
				return utils.NewValidationError("phone", "required")
			case a.Address == "":
				return utils.NewValidationError("address", "required")
			case a.ServiceType == "":
				return utils.NewValidationError("service_type", "required")
			}
			return nil
		}),
	},
	models.ToolGetQuote: {
		schema: intelligence.ToolSchema{
			Name:        models.ToolGetQuote,
			Description: "Get a ballpark price range and typical duration for a service type.",
			Parameters: map[string]intelligence.ParamSpec{
				"service_type":  {Type: "string", Description: "Kind of work needed"},
				"property_type": {Type: "string", Description: "'residential' or 'commercial'"},
				"urgent":        {Type: "boolean", Description: "True for after-hours or emergency pricing"},
			},
			Required: []string{"service_type"},
		},
		decode: decodeInto[models.GetQuoteArgs](func(a *models.GetQuoteArgs) error {
			if a.ServiceType == "" {
				return utils.NewValidationError("service_type", "required")
			}
			if a.PropertyType != "" && a.PropertyType != "residential" && a.PropertyType != "commercial" {
				return utils.NewValidationError("property_type", "must be 'residential' or 'commercial'")
			}
			return nil
		}),
	},
	models.ToolEmergencyGuidance: {
		schema: intelligence.ToolSchema{
			Name:        models.ToolEmergencyGuidance,
			Description: "Get immediate safety steps for an active emergency (burst pipe, gas smell, flooding).",
			Parameters: map[string]intelligence.ParamSpec{
				"situation": {Type: "string", Description: "What is happening right now"},
			},
			Required: []string{"situation"},
		},
		decode: decodeInto[models.EmergencyGuidanceArgs](func(a *models.EmergencyGuidanceArgs) error {
			if a.Situation == "" {
				return utils.NewValidationError("situation", "required")
			}
			return nil
		}),
	},
	models.ToolListServices: {
		schema: intelligence.ToolSchema{
			Name:        models.ToolListServices,
			Description: "List the services the company offers, optionally filtered by category.",
			Parameters: map[string]intelligence.ParamSpec{
				"category": {Type: "string", Description: "Optional category filter, e.g. 'heating'"},
			},
		},
		decode: decodeInto[models.ListServicesArgs](func(a *models.ListServicesArgs) error { return nil }),
	},
	models.ToolCaptureLead: {
		schema: intelligence.ToolSchema{
			Name:        models.ToolCaptureLead,
			Description: "Save the customer's contact details for an office follow-up call.",
			Parameters: map[string]intelligence.ParamSpec{
				"name":  {Type: "string", Description: "Customer's name"},
				"phone": {Type: "string", Description: "Callback phone number"},
				"email": {Type: "string", Description: "Email address"},
				"notes": {Type: "string", Description: "Context for the office"},
			},
			Required: []string{"name", "phone"},
		},
		decode: decodeInto[models.CaptureLeadArgs](func(a *models.CaptureLeadArgs) error {
			if a.Name == "" {
				return utils.NewValidationError("name", "required")
			}
			if a.Phone == "" {
				return utils.NewValidationError("phone", "required")
			}
			return nil
		}),
	},
	models.ToolCheckServiceArea: {
		schema: intelligence.ToolSchema{
			Name:        models.ToolCheckServiceArea,
			Description: "Check whether a zip code is inside the company's service area.",
			Parameters: map[string]intelligence.ParamSpec{
				"zip_code": {Type: "string", Description: "Five-digit zip code"},
			},
			Required: []string{"zip_code"},
		},
		decode: decodeInto[models.CheckServiceAreaArgs](func(a *models.CheckServiceAreaArgs) error {
			if len(a.ZipCode) != 5 {
				return utils.NewValidationError("zip_code", "must be five digits")
			}
			return nil
		}),
	},
}

// Schemas returns every tool schema for the completion provider.
func Schemas() []intelligence.ToolSchema {
	out := make([]intelligence.ToolSchema, 0, len(registry))
	for _, name := range []string{
		models.ToolSearchAvailability,
		models.ToolBookServiceCall,
		models.ToolGetQuote,
		models.ToolEmergencyGuidance,
		models.ToolListServices,
		models.ToolCaptureLead,
		models.ToolCheckServiceArea,
	} {
		out = append(out, registry[name].schema)
	}
	return out
}

// decodeArgs validates a call against its tool's schema. Unvalidated calls
// never reach domain logic.
func decodeArgs(call models.ToolCall) (any, error) {
	spec, ok := registry[call.Name]
	if !ok {
		return nil, utils.NewValidationError("name", fmt.Sprintf("unknown tool %q", call.Name))
	}
	return spec.decode(call.Args)
}

func decodeInto[T any](validate func(*T) error) func(json.RawMessage) (any, error) {
	return func(raw json.RawMessage) (any, error) {
		var args T
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, utils.NewValidationError("args", fmt.Sprintf("malformed arguments: %v", err))
			}
		}
		if err := validate(&args); err != nil {
			return nil, err
		}
		return &args, nil
	}
}
