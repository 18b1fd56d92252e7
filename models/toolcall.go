package models

import "encoding/json"

// Tool names the model may request. Anything else is rejected at the boundary.
const (
	ToolBookServiceCall    = "book_service_call"
	ToolSearchAvailability = "search_availability"
	ToolGetQuote           = "get_quote"
	ToolEmergencyGuidance  = "emergency_guidance"
	ToolListServices       = "list_services"
	ToolCaptureLead        = "capture_lead"
	ToolCheckServiceArea   = "check_service_area"
)

// ToolCall is a single tool invocation requested by the model. Args stay raw
// until the executor decodes them into the tool's typed argument struct.
type ToolCall struct {
	Name          string          `json:"name"`
	CorrelationID string          `json:"correlationId"`
	Args          json.RawMessage `json:"args"`
}

// BookServiceCallArgs books a specific slot for a customer.
type BookServiceCallArgs struct {
	SlotID       string `json:"slot_id"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ServiceType  string `json:"service_type"`
	Description  string `json:"description,omitempty"`
}

// SearchAvailabilityArgs asks for open slots for a service.
type SearchAvailabilityArgs struct {
	ServiceType string `json:"service_type"`
	Date        string `json:"date,omitempty"` // "2006-01-02"; empty means soonest
	Urgent      bool   `json:"urgent,omitempty"`
}

// GetQuoteArgs asks for a ballpark price range.
type GetQuoteArgs struct {
	ServiceType  string `json:"service_type"`
	PropertyType string `json:"property_type,omitempty"` // "residential" or "commercial"
	Urgent       bool   `json:"urgent,omitempty"`
}

// EmergencyGuidanceArgs asks for safety guidance for an active emergency.
type EmergencyGuidanceArgs struct {
	Situation string `json:"situation"`
}

// ListServicesArgs lists offered services, optionally filtered.
type ListServicesArgs struct {
	Category string `json:"category,omitempty"`
}

// CaptureLeadArgs records contact details for a follow-up call.
type CaptureLeadArgs struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// CheckServiceAreaArgs checks whether an address is inside the service area.
type CheckServiceAreaArgs struct {
	ZipCode string `json:"zip_code"`
}
