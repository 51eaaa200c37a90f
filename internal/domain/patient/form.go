package patient

import (
	"github.com/carebook/carebook/internal/domain/physician"
	"github.com/carebook/carebook/internal/forms"
)

// RegistrationFields declares the registration form in section order:
// personal, medical, identification, consent. The identification document is
// a skeleton field; its file drop zone is outside the closed widget set.
func RegistrationFields(physicians *physician.Registry) []forms.Field {
	physicianOptions := make([]forms.Option, 0)
	for _, p := range physicians.List() {
		physicianOptions = append(physicianOptions, forms.Option{Value: p.ID, Label: p.Name})
	}

	identificationOptions := make([]forms.Option, 0, len(IdentificationTypes))
	for _, t := range IdentificationTypes {
		identificationOptions = append(identificationOptions, forms.Option{Value: t, Label: t})
	}

	return []forms.Field{
		// personal
		{Name: "name", Label: "Full name", Placeholder: "John Doe", Type: forms.FieldInput, Required: true, Validate: forms.MinLen(2)},
		{Name: "email", Label: "Email address", Placeholder: "johndoe@example.com", Type: forms.FieldInput, Required: true, Validate: forms.Email},
		{Name: "phone", Label: "Phone number", Type: forms.FieldPhoneInput, Required: true, Validate: forms.Phone},
		{Name: "birth_date", Label: "Date of birth", Type: forms.FieldDatePicker, Required: true, Validate: forms.Date},
		{Name: "gender", Label: "Gender", Type: forms.FieldSelect, Required: true,
			Options:  []forms.Option{{Value: "male", Label: "Male"}, {Value: "female", Label: "Female"}, {Value: "other", Label: "Other"}},
			Validate: forms.OneOf("male", "female", "other")},
		{Name: "address", Label: "Address", Placeholder: "14 street, New York, NY - 5101", Type: forms.FieldInput, Required: true},
		{Name: "occupation", Label: "Occupation", Placeholder: "Software Engineer", Type: forms.FieldInput, Required: true},
		{Name: "emergency_contact_name", Label: "Emergency contact name", Type: forms.FieldInput, Required: true},
		{Name: "emergency_contact_phone", Label: "Emergency contact number", Type: forms.FieldPhoneInput, Required: true, Validate: forms.Phone},

		// medical
		{Name: "primary_physician_id", Label: "Primary care physician", Type: forms.FieldSelect, Required: true, Options: physicianOptions},
		{Name: "insurance_provider", Label: "Insurance provider", Placeholder: "BlueCross BlueShield", Type: forms.FieldInput, Required: true},
		{Name: "insurance_policy_number", Label: "Insurance policy number", Placeholder: "ABC123456789", Type: forms.FieldInput, Required: true},
		{Name: "allergies", Label: "Allergies (if any)", Placeholder: "Peanuts, Penicillin, Pollen", Type: forms.FieldTextarea},
		{Name: "current_medication", Label: "Current medication", Placeholder: "Ibuprofen 200mg, Levothyroxine 50mcg", Type: forms.FieldTextarea},
		{Name: "family_medical_history", Label: "Family medical history", Type: forms.FieldTextarea},
		{Name: "past_medical_history", Label: "Past medical history", Type: forms.FieldTextarea},

		// identification
		{Name: "identification_type", Label: "Identification type", Type: forms.FieldSelect, Options: identificationOptions},
		{Name: "identification_number", Label: "Identification number", Placeholder: "123456789", Type: forms.FieldInput},
		{Name: "identification_document", Label: "Scanned copy of identification document", Type: forms.FieldSkeleton,
			Render: func(value any, fieldErr string) *forms.Widget {
				return &forms.Widget{
					Kind:  "file-upload",
					Name:  "identification_document",
					Label: "Scanned copy of identification document",
					Value: value,
					Error: fieldErr,
				}
			}},

		// consent
		{Name: "treatment_consent", Label: "I consent to receive treatment for my health condition.", Type: forms.FieldCheckbox, Required: true, Validate: forms.MustBeTrue},
		{Name: "disclosure_consent", Label: "I consent to the use and disclosure of my health information for treatment purposes.", Type: forms.FieldCheckbox, Required: true, Validate: forms.MustBeTrue},
		{Name: "privacy_consent", Label: "I acknowledge that I have reviewed and agree to the privacy policy.", Type: forms.FieldCheckbox, Required: true, Validate: forms.MustBeTrue},
	}
}
