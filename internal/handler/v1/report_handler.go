package v1

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthease/healthease-api/internal/domain/report"
	"github.com/healthease/healthease-api/internal/extract"
	"github.com/healthease/healthease-api/internal/service"
)

type ReportHandler struct {
	svc      *service.ReportService
	maxFiles int
}

func NewReportHandler(svc *service.ReportService, maxFiles int) *ReportHandler {
	return &ReportHandler{svc: svc, maxFiles: maxFiles}
}

type reportResponse struct {
	ID              string                    `json:"id"`
	PatientID       string                    `json:"patient_id"`
	FileName        string                    `json:"filename"`
	ContentType     string                    `json:"content_type"`
	FileData        string                    `json:"file_data,omitempty"`
	ExtractedText   string                    `json:"extracted_text,omitempty"`
	MedicalValues   map[extract.Metric]string `json:"medical_values"`
	ConfidenceScore float64                   `json:"confidence_score"`
	CreatedAt       time.Time                 `json:"created_at"`
}

type pagedReportsResponse struct {
	Reports    []reportResponse `json:"reports"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

func toReportResponse(r *report.Report) reportResponse {
	values := r.MedicalValues
	if values == nil {
		values = map[extract.Metric]string{}
	}
	return reportResponse{
		ID:              r.ID.String(),
		PatientID:       r.PatientID.String(),
		FileName:        r.FileName,
		ContentType:     r.ContentType,
		FileData:        r.FileData,
		ExtractedText:   r.ExtractedText,
		MedicalValues:   values,
		ConfidenceScore: r.ConfidenceScore,
		CreatedAt:       r.CreatedAt,
	}
}

// UploadReports accepts a multipart form with one or more files under the
// "files" field and runs each through the extraction pipeline.
func (h *ReportHandler) UploadReports(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		respondError(c, http.StatusBadRequest, "at least one file is required under the files field")
		return
	}
	if len(fileHeaders) > h.maxFiles {
		respondError(c, http.StatusBadRequest, "too many files in one request")
		return
	}

	files := make([]service.UploadFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, "unreadable file: "+fh.Filename)
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(c, http.StatusBadRequest, "unreadable file: "+fh.Filename)
			return
		}

		files = append(files, service.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}

	results := h.svc.UploadReports(c.Request.Context(), files, claims.UserID, string(claims.Role), c.ClientIP())
	respondCreated(c, gin.H{"results": results})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	r, err := h.svc.GetReport(c.Request.Context(), id, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toReportResponse(r))
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	q := &report.ListReportsQuery{
		PatientID: claims.UserID,
		Page:      parseQueryInt(c, "page", 1),
		PageSize:  parseQueryInt(c, "page_size", 20),
	}

	paged, err := h.svc.ListReports(c.Request.Context(), q, claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := pagedReportsResponse{
		Reports:    make([]reportResponse, 0, len(paged.Reports)),
		TotalCount: paged.TotalCount,
		Page:       paged.Page,
		PageSize:   paged.PageSize,
		TotalPages: paged.TotalPages,
	}
	for _, r := range paged.Reports {
		resp.Reports = append(resp.Reports, toReportResponse(r))
	}

	respondOK(c, resp)
}
