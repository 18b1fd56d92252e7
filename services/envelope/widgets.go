package envelope

import "fieldassist/models"

// widgetBindings maps each tool to its UI template. Unknown tool names get no
// binding and render as text only.
var widgetBindings = map[string]models.WidgetBinding{
	models.ToolBookServiceCall:    {TemplateID: "booking-confirmation-card", IsAccessibleToModel: true},
	models.ToolSearchAvailability: {TemplateID: "availability-picker", IsAccessibleToModel: true},
	models.ToolGetQuote:           {TemplateID: "quote-range-card", IsAccessibleToModel: true},
	models.ToolEmergencyGuidance:  {TemplateID: "emergency-guidance-card", IsAccessibleToModel: false},
	models.ToolListServices:       {TemplateID: "service-list", IsAccessibleToModel: true},
	models.ToolCaptureLead:        {TemplateID: "lead-confirmation", IsAccessibleToModel: false},
	models.ToolCheckServiceArea:   {TemplateID: "service-area-card", IsAccessibleToModel: true},
}

// BindingFor returns the widget binding for a tool name, if one exists.
func BindingFor(tool string) *models.WidgetBinding {
	if b, ok := widgetBindings[tool]; ok {
		cp := b
		return &cp
	}
	return nil
}
