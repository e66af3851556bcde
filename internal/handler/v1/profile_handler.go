package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/healthease/healthease-api/internal/domain"
	"github.com/healthease/healthease-api/internal/service"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type updateProfileRequest struct {
	Name              string                    `json:"name" binding:"required"`
	Age               *int                      `json:"age"`
	Gender            string                    `json:"gender"`
	BloodGroup        string                    `json:"blood_group"`
	Phone             string                    `json:"phone"`
	MedicalHistory    []string                  `json:"medical_history"`
	Allergies         []string                  `json:"allergies"`
	EmergencyContacts []domain.EmergencyContact `json:"emergency_contacts"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	user, err := h.svc.GetProfile(c.Request.Context(), claims.UserID, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toUserResponse(user))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &service.UpdateProfileCommand{
		Name:              req.Name,
		Age:               req.Age,
		Gender:            domain.Gender(req.Gender),
		BloodGroup:        req.BloodGroup,
		Phone:             req.Phone,
		MedicalHistory:    req.MedicalHistory,
		Allergies:         req.Allergies,
		EmergencyContacts: req.EmergencyContacts,
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), claims.UserID, cmd, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toUserResponse(user))
}
