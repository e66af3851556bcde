package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthease/healthease-api/internal/extract"
)

// Report is an uploaded medical document together with the OCR text and the
// measurements extracted from it. Once created, reports are never edited.
type Report struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`

	FileName    string `gorm:"column:file_name;type:varchar(255);not null"`
	ContentType string `gorm:"column:content_type;type:varchar(100);not null"`
	// FileData is the base64-encoded original upload. Excluded from
	// list responses; only returned when a single report is fetched.
	FileData string `gorm:"column:file_data;type:text"`

	ExtractedText   string                    `gorm:"column:extracted_text;type:text"`
	MedicalValues   map[extract.Metric]string `gorm:"column:medical_values;serializer:json"`
	ConfidenceScore float64                   `gorm:"column:confidence_score"`
}

func (Report) TableName() string {
	return "clinical.medical_reports"
}

type ListReportsQuery struct {
	PatientID uuid.UUID
	Page      int
	PageSize  int
}

type PagedReports struct {
	Reports    []*Report
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}
