package tools

import (
	"context"

	"fieldassist/models"
)

func (e *Executor) captureLead(ctx context.Context, args *models.CaptureLeadArgs) (*models.Lead, error) {
	lead := &models.Lead{
		Name:  args.Name,
		Phone: args.Phone,
		Email: args.Email,
		Notes: args.Notes,
	}
	if err := e.Store.SaveLead(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}
