package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carebook/carebook/internal/domain/physician"
	"github.com/carebook/carebook/internal/platform/db"
)

type mockPatientRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockPatientRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Patient, error) {
	for _, p := range m.patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		items = append(items, p)
	}
	return items, len(items), nil
}

func validInput() RegisterPatientInput {
	return RegisterPatientInput{
		UserID:                uuid.New(),
		Name:                  "Jane Doe",
		Email:                 "jane@example.com",
		Phone:                 "+15551234567",
		BirthDate:             "1990-04-12",
		Gender:                "female",
		Address:               "14 street, New York",
		Occupation:            "Engineer",
		EmergencyContactName:  "John Doe",
		EmergencyContactPhone: "+15557654321",
		PrimaryPhysicianID:    "dr-leila-cameron",
		InsuranceProvider:     "BlueCross",
		InsurancePolicyNumber: "ABC123",
		TreatmentConsent:      true,
		DisclosureConsent:     true,
		PrivacyConsent:        true,
	}
}

func newService() (*Service, *mockPatientRepo) {
	repo := newMockPatientRepo()
	return NewService(repo, physician.DefaultRegistry(), db.NopTxRunner{}), repo
}

func TestRegisterPatient(t *testing.T) {
	svc, _ := newService()

	p, err := svc.RegisterPatient(context.Background(), validInput())
	if err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if p.BirthDate.Year() != 1990 {
		t.Errorf("birth date = %v", p.BirthDate)
	}
	if p.IdentificationDocumentID != nil {
		t.Error("document id should be nil when none attached")
	}
	if p.Allergies != nil {
		t.Error("empty allergies should be nil")
	}
}

func TestRegisterPatientWithDocument(t *testing.T) {
	svc, _ := newService()

	in := validInput()
	in.IdentificationType = "Passport"
	in.IdentificationNumber = "X1234567"
	in.IdentificationDocumentID = "doc-42"

	p, err := svc.RegisterPatient(context.Background(), in)
	if err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}
	if p.IdentificationDocumentID == nil || *p.IdentificationDocumentID != "doc-42" {
		t.Errorf("document id = %v", p.IdentificationDocumentID)
	}
}

func TestRegisterPatientValidation(t *testing.T) {
	svc, _ := newService()

	mutations := []struct {
		name   string
		mutate func(*RegisterPatientInput)
	}{
		{"missing user", func(in *RegisterPatientInput) { in.UserID = uuid.Nil }},
		{"missing name", func(in *RegisterPatientInput) { in.Name = "" }},
		{"bad email", func(in *RegisterPatientInput) { in.Email = "nope" }},
		{"bad phone", func(in *RegisterPatientInput) { in.Phone = "nope" }},
		{"missing birth date", func(in *RegisterPatientInput) { in.BirthDate = "" }},
		{"bad birth date", func(in *RegisterPatientInput) { in.BirthDate = "yesterday" }},
		{"bad gender", func(in *RegisterPatientInput) { in.Gender = "robot" }},
		{"unknown physician", func(in *RegisterPatientInput) { in.PrimaryPhysicianID = "dr-nobody" }},
		{"no treatment consent", func(in *RegisterPatientInput) { in.TreatmentConsent = false }},
		{"no disclosure consent", func(in *RegisterPatientInput) { in.DisclosureConsent = false }},
		{"no privacy consent", func(in *RegisterPatientInput) { in.PrivacyConsent = false }},
	}

	for _, tc := range mutations {
		in := validInput()
		tc.mutate(&in)
		if _, err := svc.RegisterPatient(context.Background(), in); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: got %v, want ErrInvalid", tc.name, err)
		}
	}
}

func TestRegisterPatientDuplicateUser(t *testing.T) {
	svc, _ := newService()

	in := validInput()
	if _, err := svc.RegisterPatient(context.Background(), in); err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}
	if _, err := svc.RegisterPatient(context.Background(), in); !errors.Is(err, ErrInvalid) {
		t.Errorf("second registration: got %v, want ErrInvalid", err)
	}
}

func TestGetPatientByUser(t *testing.T) {
	svc, _ := newService()

	in := validInput()
	created, err := svc.RegisterPatient(context.Background(), in)
	if err != nil {
		t.Fatalf("RegisterPatient: %v", err)
	}

	p, err := svc.GetPatientByUser(context.Background(), in.UserID)
	if err != nil {
		t.Fatalf("GetPatientByUser: %v", err)
	}
	if p.ID != created.ID {
		t.Errorf("got %s, want %s", p.ID, created.ID)
	}

	if _, err := svc.GetPatientByUser(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v", err)
	}
}
