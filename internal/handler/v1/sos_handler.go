package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthease/healthease-api/internal/domain/sos"
	"github.com/healthease/healthease-api/internal/service"
)

type SOSHandler struct {
	svc *service.SOSService
}

func NewSOSHandler(svc *service.SOSService) *SOSHandler {
	return &SOSHandler{svc: svc}
}

type triggerAlertRequest struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Address       string  `json:"address"`
	EmergencyType string  `json:"emergency_type" binding:"required"`
	Notes         string  `json:"notes"`
}

type alertResponse struct {
	ID            string              `json:"id"`
	PatientID     string              `json:"patient_id"`
	Location      sos.Location        `json:"location"`
	EmergencyType string              `json:"emergency_type"`
	Notes         string              `json:"notes,omitempty"`
	Status        sos.Status          `json:"status"`
	PatientInfo   sos.PatientSnapshot `json:"patient_info"`
	CreatedAt     time.Time           `json:"created_at"`
	ResolvedAt    *time.Time          `json:"resolved_at,omitempty"`
}

func toAlertResponse(a *sos.Alert) alertResponse {
	return alertResponse{
		ID:            a.ID.String(),
		PatientID:     a.PatientID.String(),
		Location:      a.Location,
		EmergencyType: a.EmergencyType,
		Notes:         a.Notes,
		Status:        a.Status,
		PatientInfo:   a.PatientInfo,
		CreatedAt:     a.CreatedAt,
		ResolvedAt:    a.ResolvedAt,
	}
}

func (h *SOSHandler) TriggerAlert(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	var req triggerAlertRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &sos.TriggerAlertCommand{
		PatientID:     claims.UserID,
		Location:      sos.Location{Lat: req.Lat, Lon: req.Lon, Address: req.Address},
		EmergencyType: req.EmergencyType,
		Notes:         req.Notes,
	}

	alert, err := h.svc.TriggerAlert(c.Request.Context(), cmd, claims.UserID, string(claims.Role), c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, toAlertResponse(alert))
}

func (h *SOSHandler) ListActiveAlerts(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	alerts, err := h.svc.ListActiveAlerts(c.Request.Context(), claims.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, toAlertResponse(a))
	}

	respondOK(c, gin.H{"alerts": out})
}
