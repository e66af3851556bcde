package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/domain/report"
	"github.com/healthease/healthease-api/internal/extract"
	"github.com/healthease/healthease-api/internal/ocr"
	"github.com/healthease/healthease-api/pkg/metrics"
)

// previewLimit bounds the extracted-text echo in upload responses; the full
// text is persisted with the report.
const previewLimit = 500

// UploadFile is one file from a multipart upload request.
type UploadFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// UploadResult is the per-file outcome. A failed file carries Error and
// leaves the other fields zero; one bad file never fails the whole request.
type UploadResult struct {
	ReportID        string                    `json:"report_id,omitempty"`
	FileName        string                    `json:"filename"`
	ExtractedText   string                    `json:"extracted_text,omitempty"`
	MedicalValues   map[extract.Metric]string `json:"medical_values,omitempty"`
	ConfidenceScore float64                   `json:"confidence_score,omitempty"`
	Error           string                    `json:"error,omitempty"`
	Success         bool                      `json:"success"`
}

type ReportService struct {
	repo         report.Repository
	textractor   ocr.TextExtractor
	maxFileBytes int64
	auditSvc     *AuditService
	metrics      *metrics.Collector
	log          *zap.Logger
}

func NewReportService(
	repo report.Repository,
	textractor ocr.TextExtractor,
	maxFileBytes int64,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *ReportService {
	return &ReportService{
		repo:         repo,
		textractor:   textractor,
		maxFileBytes: maxFileBytes,
		auditSvc:     auditSvc,
		metrics:      m,
		log:          log,
	}
}

// UploadReports runs each file through the OCR and extraction pipeline.
// Results preserve input order.
func (s *ReportService) UploadReports(ctx context.Context, files []UploadFile, callerID uuid.UUID, callerRole string, ip string) []UploadResult {
	results := make([]UploadResult, 0, len(files))
	for _, f := range files {
		results = append(results, s.processFile(ctx, f, callerID, callerRole, ip))
	}
	return results
}

func (s *ReportService) processFile(ctx context.Context, f UploadFile, callerID uuid.UUID, callerRole string, ip string) UploadResult {
	fail := func(err error) UploadResult {
		return UploadResult{FileName: f.Name, Error: err.Error(), Success: false}
	}

	if !isSupportedReportType(f.ContentType) {
		s.metrics.ReportsProcessedTotal.WithLabelValues("rejected").Inc()
		return fail(report.ErrUnsupportedFileType)
	}
	if int64(len(f.Content)) > s.maxFileBytes {
		s.metrics.ReportsProcessedTotal.WithLabelValues("rejected").Inc()
		return fail(report.ErrFileTooLarge)
	}

	ocrStart := time.Now()
	text, err := s.textractor.ExtractText(ctx, f.Content, f.ContentType)
	s.metrics.OCRRequestDuration.Observe(time.Since(ocrStart).Seconds())
	if err != nil {
		s.metrics.ReportsProcessedTotal.WithLabelValues("ocr_error").Inc()
		s.log.Warn("ocr failed for uploaded report",
			zap.String("filename", f.Name),
			zap.Error(err),
		)
		return fail(fmt.Errorf("extracting text: %w", err))
	}

	values := extract.Values(text)
	for metric := range values {
		s.metrics.ValuesExtractedTotal.WithLabelValues(string(metric)).Inc()
	}
	confidence := extract.Confidence(values)

	r := &report.Report{
		PatientID:       callerID,
		FileName:        f.Name,
		ContentType:     f.ContentType,
		FileData:        base64.StdEncoding.EncodeToString(f.Content),
		ExtractedText:   text,
		MedicalValues:   values,
		ConfidenceScore: confidence,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.metrics.ReportsProcessedTotal.WithLabelValues("store_error").Inc()
		s.log.Error("failed to persist report", zap.Error(err))
		return fail(fmt.Errorf("saving report: %w", err))
	}

	s.metrics.ReportsProcessedTotal.WithLabelValues("ok").Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "report",
		ResourceID:   r.ID.String(),
		IPAddress:    ip,
	})

	return UploadResult{
		ReportID:        r.ID.String(),
		FileName:        f.Name,
		ExtractedText:   truncate(text, previewLimit),
		MedicalValues:   values,
		ConfidenceScore: confidence,
		Success:         true,
	}
}

func (s *ReportService) GetReport(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole string, ip string) (*report.Report, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.PatientID != callerID {
		// Report existence is not disclosed across patients.
		return nil, report.ErrReportNotFound
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "read",
		ResourceType: "report",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return r, nil
}

func (s *ReportService) ListReports(ctx context.Context, q *report.ListReportsQuery, callerID uuid.UUID) (*report.PagedReports, error) {
	q.PatientID = callerID

	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.repo.List(ctx, q)
}

func isSupportedReportType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || contentType == "application/pdf"
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
