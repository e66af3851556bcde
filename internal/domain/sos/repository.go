package sos

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Alert) error

	// GetByID retrieves an alert. Returns ErrAlertNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)

	// ListActive returns unresolved alerts for a patient, newest first.
	ListActive(ctx context.Context, patientID uuid.UUID) ([]*Alert, error)
}
