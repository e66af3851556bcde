package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthease/healthease-api/internal/domain/sos"
)

type SOSRepo struct {
	db *gorm.DB
}

func NewSOSRepo(db *gorm.DB) *SOSRepo {
	return &SOSRepo{db: db}
}

func (r *SOSRepo) Create(ctx context.Context, a *sos.Alert) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("inserting sos alert: %w", err)
	}
	return nil
}

func (r *SOSRepo) GetByID(ctx context.Context, id uuid.UUID) (*sos.Alert, error) {
	var a sos.Alert
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sos.ErrAlertNotFound
		}
		return nil, fmt.Errorf("querying sos alert: %w", err)
	}
	return &a, nil
}

func (r *SOSRepo) ListActive(ctx context.Context, patientID uuid.UUID) ([]*sos.Alert, error) {
	var alerts []*sos.Alert
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND status = ?", patientID, sos.StatusActive).
		Order("created_at DESC").
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("listing sos alerts: %w", err)
	}
	return alerts, nil
}
