package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carebook/carebook/internal/domain/physician"
	"github.com/carebook/carebook/internal/forms"
)

var (
	ErrNotFound = errors.New("patient not found")
	ErrInvalid  = errors.New("invalid registration")
)

// TxRunner runs a function inside a single database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo       PatientRepository
	physicians *physician.Registry
	tx         TxRunner
}

func NewService(repo PatientRepository, physicians *physician.Registry, tx TxRunner) *Service {
	return &Service{repo: repo, physicians: physicians, tx: tx}
}

// RegisterPatient validates the full registration in one pass and creates
// the record. All three consents must be affirmed; the identification
// document is optional. The duplicate check and the insert run in one
// transaction so concurrent submissions cannot both register the same user.
func (s *Service) RegisterPatient(ctx context.Context, in RegisterPatientInput) (*Patient, error) {
	if err := s.validateRegistration(in); err != nil {
		return nil, err
	}

	birthDate, err := parseBirthDate(in.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	p := &Patient{
		UserID:                   in.UserID,
		Name:                     in.Name,
		Email:                    in.Email,
		Phone:                    in.Phone,
		BirthDate:                birthDate,
		Gender:                   in.Gender,
		Address:                  in.Address,
		Occupation:               in.Occupation,
		EmergencyContactName:     in.EmergencyContactName,
		EmergencyContactPhone:    in.EmergencyContactPhone,
		PrimaryPhysicianID:       in.PrimaryPhysicianID,
		Allergies:                optional(in.Allergies),
		CurrentMedication:        optional(in.CurrentMedication),
		FamilyMedicalHistory:     optional(in.FamilyMedicalHistory),
		PastMedicalHistory:       optional(in.PastMedicalHistory),
		InsuranceProvider:        in.InsuranceProvider,
		InsurancePolicyNumber:    in.InsurancePolicyNumber,
		IdentificationType:       optional(in.IdentificationType),
		IdentificationNumber:     optional(in.IdentificationNumber),
		IdentificationDocumentID: optional(in.IdentificationDocumentID),
		TreatmentConsent:         in.TreatmentConsent,
		DisclosureConsent:        in.DisclosureConsent,
		PrivacyConsent:           in.PrivacyConsent,
	}
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByUserID(ctx, in.UserID); err == nil {
			return fmt.Errorf("%w: user %s is already registered", ErrInvalid, in.UserID)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetPatientByUser resolves the registration belonging to a booking account.
func (s *Service) GetPatientByUser(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

var validGenders = map[string]bool{
	"male": true, "female": true, "other": true,
}

func (s *Service) validateRegistration(in RegisterPatientInput) error {
	if in.UserID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", ErrInvalid)
	}
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if err := forms.Email(in.Email); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := forms.Phone(in.Phone); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if in.BirthDate == "" {
		return fmt.Errorf("%w: birth date is required", ErrInvalid)
	}
	if !validGenders[in.Gender] {
		return fmt.Errorf("%w: invalid gender: %s", ErrInvalid, in.Gender)
	}
	if _, err := s.physicians.Get(in.PrimaryPhysicianID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !in.TreatmentConsent || !in.DisclosureConsent || !in.PrivacyConsent {
		return fmt.Errorf("%w: all consents must be affirmed", ErrInvalid)
	}
	return nil
}

func parseBirthDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid birth date: %s", s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
