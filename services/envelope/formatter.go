package envelope

import (
	"fmt"
	"strings"

	"fieldassist/models"
	"fieldassist/utils"
)

// maxVisibleSlots caps how many availability entries reach the model's context.
// The complete list still travels to the UI through PrivateMeta.
const maxVisibleSlots = 7

// Formatter translates every domain-action result into the three-part envelope
// and attaches the tool's widget binding.
type Formatter struct {
	CompanyPhone string
}

func NewFormatter(companyPhone string) *Formatter {
	return &Formatter{CompanyPhone: companyPhone}
}

// Format wraps a successful tool result. The narrative restates the outcome in
// one short sentence; it is never a data dump.
func (f *Formatter) Format(call models.ToolCall, result any) models.ResponseEnvelope {
	env := models.ResponseEnvelope{
		StructuredContent: map[string]any{"correlation_id": call.CorrelationID},
		PrivateMeta:       map[string]any{"correlation_id": call.CorrelationID},
		CorrelationID:     call.CorrelationID,
		Success:           true,
		Widget:            BindingFor(call.Name),
	}

	switch r := result.(type) {
	case *models.BookingResult:
		f.formatBooking(&env, r)
	case *models.AvailabilityResult:
		f.formatAvailability(&env, r)
	case *models.QuoteEstimate:
		f.formatQuote(&env, r)
	case *models.EmergencyGuidance:
		f.formatEmergency(&env, r)
	case []models.ServiceOffering:
		f.formatServices(&env, r)
	case *models.Lead:
		f.formatLead(&env, r)
	case *models.ServiceAreaResult:
		f.formatServiceArea(&env, r)
	default:
		env.Narrative = "Done."
	}
	return env
}

// FormatError wraps a failed tool execution. The shape matches the success
// envelope so the UI can render a failure state instead of a blank screen.
func (f *Formatter) FormatError(call models.ToolCall, err error) models.ResponseEnvelope {
	env := models.ResponseEnvelope{
		StructuredContent: map[string]any{"correlation_id": call.CorrelationID},
		PrivateMeta:       map[string]any{"correlation_id": call.CorrelationID},
		CorrelationID:     call.CorrelationID,
		Success:           false,
		Widget:            BindingFor(call.Name),
	}

	switch {
	case utils.IsValidation(err):
		env.StructuredContent["error_code"] = "invalid_arguments"
		env.Narrative = "I'm missing a detail I need for that - could you double-check what you gave me?"
	case utils.IsConflict(err):
		env.StructuredContent["error_code"] = "slot_taken"
		env.Narrative = "That time was just taken - please pick another slot."
	case utils.IsUpstreamTimeout(err):
		env.StructuredContent["error_code"] = "upstream_timeout"
		env.Narrative = fmt.Sprintf("We're having trouble reaching our scheduling system. Please call us at %s and we'll get you booked right away.", f.CompanyPhone)
	default:
		env.StructuredContent["error_code"] = "internal_error"
		env.Narrative = fmt.Sprintf("Something went wrong on our end. Please call us at %s.", f.CompanyPhone)
	}
	return env
}

func (f *Formatter) formatBooking(env *models.ResponseEnvelope, r *models.BookingResult) {
	c := r.Confirmation
	env.StructuredContent["job_id"] = c.JobID
	env.StructuredContent["scheduled_start"] = c.ScheduledStart.Format("Mon Jan 2 3:04 PM")
	env.StructuredContent["arrival_window_minutes"] = c.ArrivalWindowMinutes
	env.StructuredContent["fee_waived"] = c.FeeWaived
	env.StructuredContent["service_type"] = r.ServiceType

	// Customer-private fields stay out of model context.
	env.PrivateMeta["customer_name"] = r.CustomerName
	env.PrivateMeta["phone"] = r.Phone
	env.PrivateMeta["address"] = r.Address
	env.PrivateMeta["scheduled_end"] = c.ScheduledEnd
	if r.PaymentClientSecret != "" {
		env.PrivateMeta["payment_client_secret"] = r.PaymentClientSecret
	}

	fee := "The standard dispatch fee applies."
	if c.FeeWaived {
		fee = "Your dispatch fee is waived."
	}
	env.Narrative = fmt.Sprintf("You're booked for %s with a %d-minute arrival window. %s",
		c.ScheduledStart.Format("Monday, January 2 at 3:04 PM"), c.ArrivalWindowMinutes, fee)
}

func (f *Formatter) formatAvailability(env *models.ResponseEnvelope, r *models.AvailabilityResult) {
	env.StructuredContent["total_slots"] = len(r.Slots)
	env.StructuredContent["fee_waived"] = r.FeeWaived
	env.StructuredContent["capacity_state"] = string(r.Capacity)

	if len(r.Slots) == 0 {
		env.Success = false
		env.StructuredContent["error_code"] = "no_availability"
		env.Narrative = fmt.Sprintf("I couldn't find any open slots for %s right now. Please call us at %s and we'll fit you in.", r.ServiceType, f.CompanyPhone)
		return
	}

	visible := r.Slots
	if len(visible) > maxVisibleSlots {
		visible = visible[:maxVisibleSlots]
	}
	summaries := make([]map[string]any, 0, len(visible))
	dates := make([]string, 0, len(visible))
	seen := map[string]bool{}
	for _, s := range visible {
		summaries = append(summaries, map[string]any{
			"slot_id": s.ID,
			"date":    s.Date,
			"start":   minutesToClock(s.Start),
			"end":     minutesToClock(s.End),
		})
		if !seen[s.Date] {
			seen[s.Date] = true
			dates = append(dates, s.Date)
		}
	}
	env.StructuredContent["slots"] = summaries
	env.StructuredContent["dates"] = dates
	// Full list, including technician assignments, is UI-only.
	env.PrivateMeta["all_slots"] = r.Slots

	first := visible[0]
	env.Narrative = fmt.Sprintf("I found %d openings for %s - the earliest is %s at %s.",
		len(r.Slots), r.ServiceType, first.Date, minutesToClock(first.Start))
}

func (f *Formatter) formatQuote(env *models.ResponseEnvelope, r *models.QuoteEstimate) {
	env.StructuredContent["service_type"] = r.ServiceType
	env.StructuredContent["price_low"] = r.PriceLow
	env.StructuredContent["price_high"] = r.PriceHigh
	env.StructuredContent["currency"] = r.Currency
	env.StructuredContent["duration_minutes"] = r.DurationMinutes
	// Cost-breakdown multipliers are for the widget's expandable detail view.
	env.PrivateMeta["multipliers"] = r.Multipliers

	env.Narrative = fmt.Sprintf("A typical %s runs %.0f-%.0f %s and takes about %d minutes; the exact price depends on what the technician finds on site.",
		r.ServiceType, r.PriceLow, r.PriceHigh, r.Currency, r.DurationMinutes)
}

func (f *Formatter) formatEmergency(env *models.ResponseEnvelope, r *models.EmergencyGuidance) {
	env.StructuredContent["situation"] = r.Situation
	env.StructuredContent["phone"] = r.Phone
	env.PrivateMeta["steps"] = r.Steps

	env.Narrative = fmt.Sprintf("This sounds urgent. %s Then call us right away at %s - our emergency line is answered around the clock.",
		strings.Join(firstN(r.Steps, 2), " "), r.Phone)
}

func (f *Formatter) formatServices(env *models.ResponseEnvelope, offerings []models.ServiceOffering) {
	visible := offerings
	if len(visible) > maxVisibleSlots {
		visible = visible[:maxVisibleSlots]
	}
	names := make([]string, 0, len(visible))
	for _, o := range visible {
		names = append(names, o.Name)
	}
	env.StructuredContent["total_services"] = len(offerings)
	env.StructuredContent["services"] = names
	env.PrivateMeta["all_services"] = offerings

	env.Narrative = fmt.Sprintf("We handle %s, and more.", strings.Join(names, ", "))
}

func (f *Formatter) formatLead(env *models.ResponseEnvelope, lead *models.Lead) {
	env.StructuredContent["lead_id"] = lead.ID
	env.PrivateMeta["name"] = lead.Name
	env.PrivateMeta["phone"] = lead.Phone
	env.PrivateMeta["email"] = lead.Email
	env.PrivateMeta["notes"] = lead.Notes

	env.Narrative = "Got it - someone from our office will call you back shortly."
}

func (f *Formatter) formatServiceArea(env *models.ResponseEnvelope, r *models.ServiceAreaResult) {
	env.StructuredContent["zip_code"] = r.ZipCode
	env.StructuredContent["in_area"] = r.InArea
	if r.NearestOfficeNote != "" {
		env.PrivateMeta["nearest_office_note"] = r.NearestOfficeNote
	}

	if r.InArea {
		env.Narrative = fmt.Sprintf("Good news - %s is inside our service area.", r.ZipCode)
	} else {
		env.Narrative = fmt.Sprintf("I'm sorry, %s is outside our service area. If you'd like, I can take your details in case that changes.", r.ZipCode)
	}
}

func minutesToClock(m int) string {
	h, mm := m/60, m%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	if h > 12 {
		h -= 12
	}
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, mm, suffix)
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
