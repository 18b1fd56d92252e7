package tools

import (
	"strings"

	"fieldassist/models"
)

// Zip prefixes the trucks cover. Anything else gets the out-of-area answer
// plus a nudge toward lead capture.
var serviceAreaPrefixes = []string{"021", "022", "023", "024", "027"}

func (e *Executor) checkServiceArea(args *models.CheckServiceAreaArgs) *models.ServiceAreaResult {
	for _, prefix := range serviceAreaPrefixes {
		if strings.HasPrefix(args.ZipCode, prefix) {
			return &models.ServiceAreaResult{ZipCode: args.ZipCode, InArea: true}
		}
	}
	return &models.ServiceAreaResult{
		ZipCode:           args.ZipCode,
		InArea:            false,
		NearestOfficeNote: "We occasionally open new routes; captured leads are notified first.",
	}
}
