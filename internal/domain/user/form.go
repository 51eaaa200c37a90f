package user

import "github.com/carebook/carebook/internal/forms"

// IntakeFields declares the patient intake form: the three fields shown on
// the landing screen before registration proper.
func IntakeFields() []forms.Field {
	return []forms.Field{
		{
			Name:        "name",
			Label:       "Full name",
			Placeholder: "John Doe",
			Type:        forms.FieldInput,
			Required:    true,
			Validate:    forms.MinLen(2),
		},
		{
			Name:        "email",
			Label:       "Email address",
			Placeholder: "johndoe@example.com",
			Type:        forms.FieldInput,
			Required:    true,
			Validate:    forms.Email,
		},
		{
			Name:        "phone",
			Label:       "Phone number",
			Placeholder: "+00 0342 0453 34",
			Type:        forms.FieldPhoneInput,
			Required:    true,
			Validate:    forms.Phone,
		},
	}
}

// IntakeFromState converts a validated intake form state to the service
// payload.
func IntakeFromState(st *forms.State) CreateUserInput {
	return CreateUserInput{
		Name:  st.String("name"),
		Email: st.String("email"),
		Phone: st.String("phone"),
	}
}
