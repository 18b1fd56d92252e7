package tools

import (
	"strings"

	"fieldassist/models"
)

type priceBand struct {
	low, high       float64
	durationMinutes int
}

// Ballpark bands per service keyword. Final pricing always comes from the
// technician on site; these only anchor the conversation.
var priceBands = map[string]priceBand{
	"water heater":  {350, 1800, 120},
	"drain":         {150, 450, 60},
	"leak":          {180, 600, 90},
	"sewer":         {400, 3500, 180},
	"toilet":        {120, 400, 60},
	"faucet":        {100, 350, 45},
	"sump pump":     {300, 1200, 90},
	"gas line":      {250, 1500, 120},
	"heating":       {200, 1400, 120},
	"inspection":    {89, 250, 60},
}

var defaultBand = priceBand{120, 800, 90}

var quoteMultipliers = map[string]float64{
	"commercial": 1.4,
	"urgent":     1.5,
	"weekend":    1.25,
}

// getQuote maps the requested service onto a price band and applies the
// property/urgency multipliers.
func (e *Executor) getQuote(args *models.GetQuoteArgs) *models.QuoteEstimate {
	band := defaultBand
	lower := strings.ToLower(args.ServiceType)
	for keyword, b := range priceBands {
		if strings.Contains(lower, keyword) {
			band = b
			break
		}
	}

	multiplier := 1.0
	applied := map[string]float64{}
	if args.PropertyType == "commercial" {
		multiplier *= quoteMultipliers["commercial"]
		applied["commercial"] = quoteMultipliers["commercial"]
	}
	if args.Urgent {
		multiplier *= quoteMultipliers["urgent"]
		applied["urgent"] = quoteMultipliers["urgent"]
	}

	return &models.QuoteEstimate{
		ServiceType:     args.ServiceType,
		PriceLow:        band.low * multiplier,
		PriceHigh:       band.high * multiplier,
		Currency:        "USD",
		DurationMinutes: band.durationMinutes,
		Multipliers:     applied,
	}
}
