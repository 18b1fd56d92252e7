package models

import "time"

// Slot is a specific bookable window for a specific technician.
type Slot struct {
	ID           string `bson:"_id" json:"id"`
	TechnicianID string `bson:"technicianId" json:"technicianId"`
	Date         string `bson:"date" json:"date"` // "2006-01-02"
	Start        int    `bson:"start" json:"start"`
	End          int    `bson:"end" json:"end"`
	ServiceType  string `bson:"serviceType" json:"serviceType"`
	Booked       bool   `bson:"booked" json:"booked"`
	FeeWaived    bool   `bson:"feeWaived" json:"feeWaived"` // snapshotted when the slot was offered
}

// BookingConfirmation is the immutable record returned on a successful booking.
// FeeWaived is fixed at slot-selection time and is not re-evaluated here.
type BookingConfirmation struct {
	JobID                string    `bson:"_id" json:"jobId"`
	SlotID               string    `bson:"slotId" json:"slotId"`
	CustomerID           string    `bson:"customerId" json:"customerId"`
	ScheduledStart       time.Time `bson:"scheduledStart" json:"scheduledStart"`
	ScheduledEnd         time.Time `bson:"scheduledEnd" json:"scheduledEnd"`
	ArrivalWindowMinutes int       `bson:"arrivalWindowMinutes" json:"arrivalWindowMinutes"`
	FeeWaived            bool      `bson:"feeWaived" json:"feeWaived"`
	CreatedAt            time.Time `bson:"createdAt" json:"createdAt"`
}

// QuoteEstimate is a ballpark price answer for a service type.
type QuoteEstimate struct {
	ServiceType     string             `json:"serviceType"`
	PriceLow        float64            `json:"priceLow"`
	PriceHigh       float64            `json:"priceHigh"`
	Currency        string             `json:"currency"`
	DurationMinutes int                `json:"durationMinutes"`
	Multipliers     map[string]float64 `json:"multipliers,omitempty"` // cost-breakdown factors, UI-only
}

// ServiceOffering is one entry in the service catalogue.
type ServiceOffering struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Emergency   bool   `json:"emergency"`
}

// Lead is a captured follow-up request.
type Lead struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// DeliveryResult is what the SMS/voice send primitive reports back.
type DeliveryResult struct {
	MessageID string `json:"messageId"`
	Accepted  bool   `json:"accepted"`
	Detail    string `json:"detail,omitempty"`
}
