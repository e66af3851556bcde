package report

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Report) error

	// GetByID retrieves a single report including the file payload.
	// Returns ErrReportNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*Report, error)

	// List returns a patient's reports newest first, with FileData omitted.
	List(ctx context.Context, q *ListReportsQuery) (*PagedReports, error)
}
