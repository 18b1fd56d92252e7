package tools

import (
	"strings"

	"fieldassist/models"
)

var emergencySteps = map[string][]string{
	"gas": {
		"Leave the building immediately and take everyone with you.",
		"Do not flip switches or use anything that can spark.",
		"Call your gas utility's emergency line from outside.",
	},
	"flood": {
		"Shut off your main water valve if you can reach it safely.",
		"Switch off electricity to flooded areas at the breaker.",
		"Move valuables above the water line.",
	},
	"burst": {
		"Shut off your main water valve now.",
		"Open the lowest faucet in the house to drain the line.",
	},
	"sewage": {
		"Keep people and pets away from the affected area.",
		"Do not run water or flush toilets.",
	},
}

var defaultSteps = []string{
	"Shut off the water or power to the affected fixture if you can do so safely.",
	"Keep everyone clear of the area.",
}

// emergencyGuidance returns immediate safety steps keyed on the described
// situation, always ending with the emergency phone line.
func (e *Executor) emergencyGuidance(args *models.EmergencyGuidanceArgs) *models.EmergencyGuidance {
	steps := defaultSteps
	lower := strings.ToLower(args.Situation)
	for keyword, s := range emergencySteps {
		if strings.Contains(lower, keyword) {
			steps = s
			break
		}
	}
	return &models.EmergencyGuidance{
		Situation: args.Situation,
		Steps:     steps,
		Phone:     e.CompanyPhone,
	}
}
