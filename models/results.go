package models

// AvailabilityResult is the domain answer to a search_availability call.
type AvailabilityResult struct {
	ServiceType string  `json:"serviceType"`
	Slots       []Slot  `json:"slots"`
	FeeWaived   bool    `json:"feeWaived"` // from the capacity snapshot at search time
	Capacity    CapacityState `json:"capacity"`
}

// BookingResult pairs a confirmation with the customer details the UI needs.
type BookingResult struct {
	Confirmation *BookingConfirmation `json:"confirmation"`
	CustomerName string               `json:"customerName"`
	Phone        string               `json:"phone"`
	Address      string               `json:"address"`
	ServiceType  string               `json:"serviceType"`
	// PaymentClientSecret lets the web widget collect the dispatch fee when it
	// was not waived. UI-only.
	PaymentClientSecret string `json:"paymentClientSecret,omitempty"`
}

// EmergencyGuidance is the safety answer for an active emergency.
type EmergencyGuidance struct {
	Situation string   `json:"situation"`
	Steps     []string `json:"steps"`
	Phone     string   `json:"phone"`
}

// ServiceAreaResult answers whether a zip code is inside the service area.
type ServiceAreaResult struct {
	ZipCode string `json:"zipCode"`
	InArea  bool   `json:"inArea"`
	// NearestOfficeNote is shown when the zip is out of area.
	NearestOfficeNote string `json:"nearestOfficeNote,omitempty"`
}
