package tools

import (
	"strings"

	"fieldassist/models"
)

// serviceCatalogue is the offered-services listing. Marketing copy lives
// elsewhere; this is only what the assistant may book or quote.
var serviceCatalogue = []models.ServiceOffering{
	{ID: "drain-cleaning", Name: "Drain cleaning", Category: "plumbing"},
	{ID: "water-heater", Name: "Water heater repair & replacement", Category: "plumbing"},
	{ID: "leak-repair", Name: "Leak detection & repair", Category: "plumbing"},
	{ID: "sewer-line", Name: "Sewer line service", Category: "plumbing"},
	{ID: "toilet-faucet", Name: "Toilet & faucet repair", Category: "plumbing"},
	{ID: "sump-pump", Name: "Sump pump installation", Category: "plumbing"},
	{ID: "gas-line", Name: "Gas line service", Category: "heating", Emergency: true},
	{ID: "boiler", Name: "Boiler & heating repair", Category: "heating"},
	{ID: "emergency", Name: "24/7 emergency dispatch", Category: "emergency", Emergency: true},
	{ID: "inspection", Name: "Whole-home plumbing inspection", Category: "plumbing"},
}

// listServices filters the catalogue by category when one is given.
func (e *Executor) listServices(args *models.ListServicesArgs) []models.ServiceOffering {
	if args.Category == "" {
		return serviceCatalogue
	}
	want := strings.ToLower(args.Category)
	var out []models.ServiceOffering
	for _, o := range serviceCatalogue {
		if o.Category == want {
			out = append(out, o)
		}
	}
	return out
}
