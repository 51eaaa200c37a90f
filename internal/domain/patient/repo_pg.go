package patient

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carebook/carebook/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const patientCols = `id, user_id, name, email, phone, birth_date, gender, address, occupation,
	emergency_contact_name, emergency_contact_phone,
	primary_physician_id, allergies, current_medication, family_medical_history, past_medical_history,
	insurance_provider, insurance_policy_number,
	identification_type, identification_number, identification_document_id,
	treatment_consent, disclosure_consent, privacy_consent,
	created_at, updated_at`

func (r *patientRepoPG) scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Phone, &p.BirthDate, &p.Gender, &p.Address, &p.Occupation,
		&p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.PrimaryPhysicianID, &p.Allergies, &p.CurrentMedication, &p.FamilyMedicalHistory, &p.PastMedicalHistory,
		&p.InsuranceProvider, &p.InsurancePolicyNumber,
		&p.IdentificationType, &p.IdentificationNumber, &p.IdentificationDocumentID,
		&p.TreatmentConsent, &p.DisclosureConsent, &p.PrivacyConsent,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, user_id, name, email, phone, birth_date, gender, address, occupation,
			emergency_contact_name, emergency_contact_phone,
			primary_physician_id, allergies, current_medication, family_medical_history, past_medical_history,
			insurance_provider, insurance_policy_number,
			identification_type, identification_number, identification_document_id,
			treatment_consent, disclosure_consent, privacy_consent)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`,
		p.ID, p.UserID, p.Name, p.Email, p.Phone, p.BirthDate, p.Gender, p.Address, p.Occupation,
		p.EmergencyContactName, p.EmergencyContactPhone,
		p.PrimaryPhysicianID, p.Allergies, p.CurrentMedication, p.FamilyMedicalHistory, p.PastMedicalHistory,
		p.InsuranceProvider, p.InsurancePolicyNumber,
		p.IdentificationType, p.IdentificationNumber, p.IdentificationDocumentID,
		p.TreatmentConsent, p.DisclosureConsent, p.PrivacyConsent)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Patient, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID))
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
