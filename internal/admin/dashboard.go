// Package admin assembles the clinic staff dashboard: the appointment table
// with its declarative column set, the status count stat cards, and the HTTP
// surface serving them.
package admin

import (
	"context"
	"fmt"

	"github.com/carebook/carebook/internal/domain/appointment"
	"github.com/carebook/carebook/internal/domain/patient"
	"github.com/carebook/carebook/internal/domain/physician"
)

// Row is one rendered appointment table row. Every cell is resolved ahead of
// serialization; a row with an unresolvable reference is an error, not a
// blank cell.
type Row struct {
	Index         int               `json:"index"`
	AppointmentID string            `json:"appointment_id"`
	PatientID     string            `json:"patient_id"`
	UserID        string            `json:"user_id"`
	PatientName   string            `json:"patient_name"`
	Status        appointment.Badge `json:"status"`
	Schedule      string            `json:"schedule"`
	Physician     string            `json:"physician"`
	PhysicianIcon string            `json:"physician_icon"`
	Actions       []Action          `json:"actions"`
}

// Action is a modal trigger in the table's actions cell, parameterized by
// the row's identifiers.
type Action struct {
	Kind          string `json:"kind"`
	Label         string `json:"label"`
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	UserID        string `json:"user_id"`
}

// Column describes one table column for clients that build the table
// declaratively.
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

// Columns is the fixed appointment table layout.
func Columns() []Column {
	return []Column{
		{Key: "index", Header: "ID"},
		{Key: "patient_name", Header: "Patient"},
		{Key: "status", Header: "Status"},
		{Key: "schedule", Header: "Appointment"},
		{Key: "physician", Header: "Doctor"},
		{Key: "actions", Header: "Actions"},
	}
}

// StatCard is one of the dashboard's headline counters.
type StatCard struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Cards derives the three stat cards from a count summary.
func Cards(s appointment.Summary) []StatCard {
	return []StatCard{
		{Type: "appointments", Count: s.ScheduledCount, Label: "Scheduled appointments", Icon: "/assets/icons/appointments.svg"},
		{Type: "pending", Count: s.PendingCount, Label: "Pending appointments", Icon: "/assets/icons/pending.svg"},
		{Type: "cancelled", Count: s.CancelledCount, Label: "Cancelled appointments", Icon: "/assets/icons/cancelled.svg"},
	}
}

// Dashboard is the full admin payload.
type Dashboard struct {
	Summary appointment.Summary `json:"summary"`
	Cards   []StatCard          `json:"cards"`
	Columns []Column            `json:"columns"`
	Rows    []Row               `json:"rows"`
}

type Service struct {
	appointments *appointment.Service
	patients     *patient.Service
	physicians   *physician.Registry
}

func NewService(appointments *appointment.Service, patients *patient.Service, physicians *physician.Registry) *Service {
	return &Service{appointments: appointments, patients: patients, physicians: physicians}
}

// BuildDashboard fetches the recent appointment list and renders every row.
// Reference lookups that fail (missing patient, unknown physician) surface
// as errors rather than degrading to blank cells.
func (s *Service) BuildDashboard(ctx context.Context) (*Dashboard, error) {
	recent, err := s.appointments.GetRecentAppointments(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(recent.Documents))
	for i, a := range recent.Documents {
		row, err := s.buildRow(ctx, i, a)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return &Dashboard{
		Summary: recent.Summary,
		Cards:   Cards(recent.Summary),
		Columns: Columns(),
		Rows:    rows,
	}, nil
}

func (s *Service) buildRow(ctx context.Context, index int, a *appointment.Appointment) (Row, error) {
	p, err := s.patients.GetPatient(ctx, a.PatientID)
	if err != nil {
		return Row{}, fmt.Errorf("resolving patient %s: %w", a.PatientID, err)
	}
	phys, err := s.physicians.Get(a.PhysicianID)
	if err != nil {
		return Row{}, fmt.Errorf("resolving physician for appointment %s: %w", a.ID, err)
	}

	badge, ok := appointment.BadgeFor(a.Status)
	if !ok {
		badge = appointment.Badge{Status: a.Status}
	}

	return Row{
		Index:         index + 1,
		AppointmentID: a.ID.String(),
		PatientID:     a.PatientID.String(),
		UserID:        a.UserID.String(),
		PatientName:   p.Name,
		Status:        badge,
		Schedule:      a.Schedule.Format("01/02/2006, 3:04 PM"),
		Physician:     phys.Name,
		PhysicianIcon: phys.ImageURL,
		Actions: []Action{
			{Kind: "schedule", Label: "Schedule", AppointmentID: a.ID.String(), PatientID: a.PatientID.String(), UserID: a.UserID.String()},
			{Kind: "cancel", Label: "Cancel", AppointmentID: a.ID.String(), PatientID: a.PatientID.String(), UserID: a.UserID.String()},
		},
	}, nil
}
