package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthease/healthease-api/internal/domain/report"
)

type ReportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) Create(ctx context.Context, rep *report.Report) error {
	if err := r.db.WithContext(ctx).Create(rep).Error; err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}
	return nil
}

func (r *ReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*report.Report, error) {
	var rep report.Report
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rep).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, report.ErrReportNotFound
		}
		return nil, fmt.Errorf("querying report: %w", err)
	}
	return &rep, nil
}

func (r *ReportRepo) List(ctx context.Context, q *report.ListReportsQuery) (*report.PagedReports, error) {
	tx := r.db.WithContext(ctx).
		Model(&report.Report{}).
		Where("patient_id = ?", q.PatientID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting reports: %w", err)
	}

	var items []*report.Report
	// The file payload stays out of list responses.
	err := tx.Omit("file_data").
		Order("created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	return &report.PagedReports{
		Reports:    items,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}
