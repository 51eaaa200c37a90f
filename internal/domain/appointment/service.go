package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/carebook/carebook/internal/domain/physician"
	"github.com/carebook/carebook/internal/platform/notification"
)

var (
	ErrNotFound = errors.New("appointment not found")
	ErrInvalid  = errors.New("invalid appointment")
)

// RecentAppointments is the dashboard payload: the count summary plus every
// appointment in descending creation order.
type RecentAppointments struct {
	Summary
	Documents []*Appointment `json:"documents"`
}

type Service struct {
	repo          AppointmentRepository
	physicians    *physician.Registry
	notifications *notification.Manager
	clinicName    string
	log           zerolog.Logger
}

func NewService(repo AppointmentRepository, physicians *physician.Registry, notifications *notification.Manager, clinicName string, log zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		physicians:    physicians,
		notifications: notifications,
		clinicName:    clinicName,
		log:           log,
	}
}

// CreateAppointment books a pending appointment and fires a best-effort SMS
// confirmation. The stored status is always pending in this path, whatever
// the client declared.
func (s *Service) CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*Appointment, error) {
	if in.UserID == uuid.Nil || in.PatientID == uuid.Nil {
		return nil, fmt.Errorf("%w: user and patient ids are required", ErrInvalid)
	}
	if in.Schedule.IsZero() {
		return nil, fmt.Errorf("%w: schedule is required", ErrInvalid)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalid)
	}
	phys, err := s.physicians.Get(in.PhysicianID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	status, _ := StatusForMode(ModeCreate)
	a := &Appointment{
		UserID:      in.UserID,
		PatientID:   in.PatientID,
		PhysicianID: in.PhysicianID,
		Schedule:    in.Schedule,
		Reason:      in.Reason,
		Note:        optional(in.Note),
		Status:      status,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.notify(ctx, notification.TemplateAppointmentRequested, a, phys, "")
	return a, nil
}

// UpdateAppointment applies a schedule or cancel submission. The mode alone
// decides the resulting status; a cancel carries its reason verbatim.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, in UpdateAppointmentInput) (*Appointment, error) {
	status, ok := StatusForMode(in.Mode)
	if !ok || in.Mode == ModeCreate {
		return nil, fmt.Errorf("%w: unsupported mode: %s", ErrInvalid, in.Mode)
	}

	a, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	switch in.Mode {
	case ModeSchedule:
		if in.PhysicianID != "" {
			a.PhysicianID = in.PhysicianID
		}
		if !in.Schedule.IsZero() {
			a.Schedule = in.Schedule
		}
		a.Status = status
		a.CancellationReason = nil
	case ModeCancel:
		if in.CancellationReason == "" {
			return nil, fmt.Errorf("%w: cancellation reason is required", ErrInvalid)
		}
		a.Status = status
		a.CancellationReason = &in.CancellationReason
	}

	phys, err := s.physicians.Get(a.PhysicianID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	switch in.Mode {
	case ModeSchedule:
		s.notify(ctx, notification.TemplateAppointmentScheduled, a, phys, "")
	case ModeCancel:
		s.notify(ctx, notification.TemplateAppointmentCancelled, a, phys, in.CancellationReason)
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// GetRecentAppointments fetches every appointment newest-first and folds the
// list into the dashboard summary.
func (s *Service) GetRecentAppointments(ctx context.Context) (*RecentAppointments, error) {
	items, err := s.repo.ListRecent(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Appointment{}
	}
	return &RecentAppointments{
		Summary:   Summarize(items),
		Documents: items,
	}, nil
}

// notify sends the templated SMS for a mutation. Failures are logged and
// dropped: a notification problem never rolls back or masks the booking.
func (s *Service) notify(ctx context.Context, templateID string, a *Appointment, phys physician.Physician, reason string) {
	data := map[string]string{
		"clinic_name": s.clinicName,
		"date":        formatSchedule(a.Schedule),
		"physician":   phys.Name,
		"reason":      reason,
	}
	if _, err := s.notifications.SendFromTemplate(ctx, templateID, data, a.UserID.String()); err != nil {
		s.log.Warn().
			Err(err).
			Str("appointment_id", a.ID.String()).
			Str("template", templateID).
			Msg("appointment notification failed")
	}
}

func formatSchedule(t time.Time) string {
	return t.Format("01/02/2006, 3:04 PM")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
