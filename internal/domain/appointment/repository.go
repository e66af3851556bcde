package appointment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves an appointment by primary key. Returns
	// ErrAppointmentNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// List returns a patient's appointments sorted by date ascending.
	List(ctx context.Context, q *ListAppointmentsQuery) (*PagedAppointments, error)

	// UpdateStatus persists a status change along with cancellation fields.
	UpdateStatus(ctx context.Context, a *Appointment) error
}
