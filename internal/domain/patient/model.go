package patient

import (
	"time"

	"github.com/google/uuid"
)

// IdentificationTypes lists the accepted identity document kinds offered on
// the registration form.
var IdentificationTypes = []string{
	"Birth Certificate",
	"Driver's License",
	"Medical Insurance Card/Policy",
	"Military ID Card",
	"National Identity Card",
	"Passport",
	"Resident Alien Card (Green Card)",
	"Social Security Card",
	"State ID Card",
	"Student ID Card",
	"Voter ID Card",
}

// Patient is the full registration record: identity reference to the booking
// account plus personal, medical, insurance, identification, and consent
// fields. Created once at registration; there is no update path.
type Patient struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID uuid.UUID `db:"user_id" json:"user_id"`

	Name                  string    `db:"name" json:"name"`
	Email                 string    `db:"email" json:"email"`
	Phone                 string    `db:"phone" json:"phone"`
	BirthDate             time.Time `db:"birth_date" json:"birth_date"`
	Gender                string    `db:"gender" json:"gender"`
	Address               string    `db:"address" json:"address"`
	Occupation            string    `db:"occupation" json:"occupation"`
	EmergencyContactName  string    `db:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone string    `db:"emergency_contact_phone" json:"emergency_contact_phone"`

	PrimaryPhysicianID   string  `db:"primary_physician_id" json:"primary_physician_id"`
	Allergies            *string `db:"allergies" json:"allergies,omitempty"`
	CurrentMedication    *string `db:"current_medication" json:"current_medication,omitempty"`
	FamilyMedicalHistory *string `db:"family_medical_history" json:"family_medical_history,omitempty"`
	PastMedicalHistory   *string `db:"past_medical_history" json:"past_medical_history,omitempty"`

	InsuranceProvider     string `db:"insurance_provider" json:"insurance_provider"`
	InsurancePolicyNumber string `db:"insurance_policy_number" json:"insurance_policy_number"`

	IdentificationType       *string `db:"identification_type" json:"identification_type,omitempty"`
	IdentificationNumber     *string `db:"identification_number" json:"identification_number,omitempty"`
	IdentificationDocumentID *string `db:"identification_document_id" json:"identification_document_id,omitempty"`

	TreatmentConsent  bool `db:"treatment_consent" json:"treatment_consent"`
	DisclosureConsent bool `db:"disclosure_consent" json:"disclosure_consent"`
	PrivacyConsent    bool `db:"privacy_consent" json:"privacy_consent"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RegisterPatientInput is the registration form payload. The identification
// document arrives separately as a multipart file and is referenced here by
// the id assigned at upload.
type RegisterPatientInput struct {
	UserID uuid.UUID `json:"user_id"`

	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	BirthDate             string `json:"birth_date"`
	Gender                string `json:"gender"`
	Address               string `json:"address"`
	Occupation            string `json:"occupation"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`

	PrimaryPhysicianID   string `json:"primary_physician_id"`
	Allergies            string `json:"allergies"`
	CurrentMedication    string `json:"current_medication"`
	FamilyMedicalHistory string `json:"family_medical_history"`
	PastMedicalHistory   string `json:"past_medical_history"`

	InsuranceProvider     string `json:"insurance_provider"`
	InsurancePolicyNumber string `json:"insurance_policy_number"`

	IdentificationType       string `json:"identification_type"`
	IdentificationNumber     string `json:"identification_number"`
	IdentificationDocumentID string `json:"identification_document_id"`

	TreatmentConsent  bool `json:"treatment_consent"`
	DisclosureConsent bool `json:"disclosure_consent"`
	PrivacyConsent    bool `json:"privacy_consent"`
}
