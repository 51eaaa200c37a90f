package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status is an appointment's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

// Mode selects which appointment form variant a submission came from. The
// mode alone determines the resulting status; client-declared status values
// are ignored.
type Mode string

const (
	ModeCreate   Mode = "create"
	ModeSchedule Mode = "schedule"
	ModeCancel   Mode = "cancel"
)

// StatusForMode maps a submission mode to the status it forces.
func StatusForMode(m Mode) (Status, bool) {
	switch m {
	case ModeCreate:
		return StatusPending, true
	case ModeSchedule:
		return StatusScheduled, true
	case ModeCancel:
		return StatusCancelled, true
	default:
		return "", false
	}
}

// Appointment maps to the appointments table.
type Appointment struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	UserID             uuid.UUID  `db:"user_id" json:"user_id"`
	PatientID          uuid.UUID  `db:"patient_id" json:"patient_id"`
	PhysicianID        string     `db:"physician_id" json:"physician_id"`
	Schedule           time.Time  `db:"schedule" json:"schedule"`
	Reason             string     `db:"reason" json:"reason"`
	Note               *string    `db:"note" json:"note,omitempty"`
	Status             Status     `db:"status" json:"status"`
	CancellationReason *string    `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateAppointmentInput is the create-mode form payload; the produced
// record's status is always pending.
type CreateAppointmentInput struct {
	UserID      uuid.UUID `json:"user_id"`
	PatientID   uuid.UUID `json:"patient_id"`
	PhysicianID string    `json:"physician_id"`
	Schedule    time.Time `json:"schedule"`
	Reason      string    `json:"reason"`
	Note        string    `json:"note"`
}

// UpdateAppointmentInput is the schedule/cancel-mode payload.
type UpdateAppointmentInput struct {
	Mode               Mode      `json:"mode"`
	PhysicianID        string    `json:"physician_id"`
	Schedule           time.Time `json:"schedule"`
	CancellationReason string    `json:"cancellation_reason"`
}
