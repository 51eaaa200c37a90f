package appointment

import (
	"github.com/carebook/carebook/internal/domain/physician"
	"github.com/carebook/carebook/internal/forms"
)

// SubmitLabel is the button text for each form mode.
func SubmitLabel(m Mode) string {
	switch m {
	case ModeCancel:
		return "Cancel Appointment"
	case ModeSchedule:
		return "Schedule Appointment"
	default:
		return "Submit Appointment"
	}
}

// Fields declares the appointment form for a mode. Create collects the full
// request, schedule narrows to physician and date, cancel collects only the
// cancellation reason.
func Fields(m Mode, physicians *physician.Registry) []forms.Field {
	if m == ModeCancel {
		return []forms.Field{
			{
				Name:        "cancellation_reason",
				Label:       "Reason for cancellation",
				Placeholder: "Urgent meeting came up",
				Type:        forms.FieldTextarea,
				Required:    true,
			},
		}
	}

	physicianOptions := make([]forms.Option, 0)
	for _, p := range physicians.List() {
		physicianOptions = append(physicianOptions, forms.Option{Value: p.ID, Label: p.Name})
	}

	fields := []forms.Field{
		{Name: "physician_id", Label: "Doctor", Type: forms.FieldSelect, Required: true, Options: physicianOptions},
		{Name: "schedule", Label: "Expected appointment date", Type: forms.FieldDatePicker, Required: true, Validate: forms.Date},
	}
	if m == ModeCreate {
		fields = append(fields,
			forms.Field{Name: "reason", Label: "Appointment reason", Placeholder: "Annual monthly check-up", Type: forms.FieldTextarea, Required: true},
			forms.Field{Name: "note", Label: "Comments/notes", Placeholder: "Prefer afternoon appointments, if possible", Type: forms.FieldTextarea},
		)
	}
	return fields
}
