package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthease/healthease-api/internal/domain/appointment"
	"github.com/healthease/healthease-api/internal/service"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

type bookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Notes    string `json:"notes"`
}

type cancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type appointmentResponse struct {
	ID                 string             `json:"id"`
	PatientID          string             `json:"patient_id"`
	DoctorID           string             `json:"doctor_id"`
	Date               string             `json:"date"`
	Time               string             `json:"time"`
	Type               appointment.Type   `json:"type"`
	Status             appointment.Status `json:"status"`
	Notes              string             `json:"notes,omitempty"`
	CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
	CancellationReason string             `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

type pagedAppointmentsResponse struct {
	Appointments []appointmentResponse `json:"appointments"`
	TotalCount   int64                 `json:"total_count"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalPages   int                   `json:"total_pages"`
}

func toAppointmentResponse(a *appointment.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:                 a.ID.String(),
		PatientID:          a.PatientID.String(),
		DoctorID:           a.DoctorID,
		Date:               a.Date,
		Time:               a.Time,
		Type:               a.Type,
		Status:             a.Status,
		Notes:              a.Notes,
		CancelledAt:        a.CancelledAt,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
	}
}

func (h *AppointmentHandler) BookAppointment(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	var req bookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &appointment.BookAppointmentCommand{
		PatientID: claims.UserID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Type:      appointment.Type(req.Type),
		Notes:     req.Notes,
	}

	a, err := h.svc.BookAppointment(c.Request.Context(), cmd, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.GetAppointment(c.Request.Context(), id, claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req cancelAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.svc.CancelAppointment(c.Request.Context(), id, req.Reason, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toAppointmentResponse(a))
}

func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	q := &appointment.ListAppointmentsQuery{
		PatientID: claims.UserID,
		Page:      parseQueryInt(c, "page", 1),
		PageSize:  parseQueryInt(c, "page_size", 20),
	}
	if raw := c.Query("status"); raw != "" {
		status := appointment.Status(raw)
		q.Status = &status
	}

	paged, err := h.svc.ListAppointments(c.Request.Context(), q, claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := pagedAppointmentsResponse{
		Appointments: make([]appointmentResponse, 0, len(paged.Appointments)),
		TotalCount:   paged.TotalCount,
		Page:         paged.Page,
		PageSize:     paged.PageSize,
		TotalPages:   paged.TotalPages,
	}
	for _, a := range paged.Appointments {
		resp.Appointments = append(resp.Appointments, toAppointmentResponse(a))
	}

	respondOK(c, resp)
}
