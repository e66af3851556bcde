package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Type distinguishes tele-consultations from in-person visits.
type Type string

const (
	TypeOnline  Type = "online"
	TypeOffline Type = "offline"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeOnline, TypeOffline:
		return true
	}
	return false
}

// State transitions:
//
//	scheduled → completed
//	scheduled → cancelled
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Appointment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	// DoctorID references the static doctor catalog, not a database row.
	DoctorID string `gorm:"column:doctor_id;type:varchar(50);not null;index"`

	Date   string `gorm:"column:date;type:varchar(10);not null;index"` // YYYY-MM-DD
	Time   string `gorm:"column:time;type:varchar(5);not null"`        // HH:MM
	Type   Type   `gorm:"column:type;type:varchar(20);not null"`
	Status Status `gorm:"column:status;type:varchar(30);not null;default:'scheduled';index"`
	Notes  string `gorm:"column:notes;type:text"`

	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CancellationReason string     `gorm:"column:cancellation_reason;type:text"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

func (a *Appointment) CanTransitionTo(newStatus Status) bool {
	allowed := map[Status][]Status{
		StatusScheduled: {StatusCompleted, StatusCancelled},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	for _, s := range allowed[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

func (a *Appointment) Cancel(reason string) error {
	if !a.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	a.Status = StatusCancelled
	a.CancelledAt = &now
	a.CancellationReason = reason
	return nil
}

type BookAppointmentCommand struct {
	PatientID uuid.UUID
	DoctorID  string
	Date      string
	Time      string
	Type      Type
	Notes     string
}

type ListAppointmentsQuery struct {
	PatientID uuid.UUID
	Status    *Status
	Page      int
	PageSize  int
}

type PagedAppointments struct {
	Appointments []*Appointment
	TotalCount   int64
	Page         int
	PageSize     int
	TotalPages   int
}
