package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/healthease/healthease-api/internal/domain/directory"
	"github.com/healthease/healthease-api/internal/service"
)

type DirectoryHandler struct {
	svc *service.DirectoryService
}

func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

func (h *DirectoryHandler) ListDoctors(c *gin.Context) {
	respondOK(c, gin.H{"doctors": h.svc.ListDoctors()})
}

func (h *DirectoryHandler) GetDoctor(c *gin.Context) {
	doctor, err := h.svc.GetDoctor(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, doctor)
}

func (h *DirectoryHandler) NearbyFacilities(c *gin.Context) {
	lat, ok := parseQueryFloat(c, "lat")
	if !ok {
		return
	}
	lon, ok := parseQueryFloat(c, "lon")
	if !ok {
		return
	}

	ftype := directory.FacilityHospital
	if raw := c.Query("type"); raw != "" {
		ftype = directory.FacilityType(raw)
	}

	facilities, err := h.svc.NearbyFacilities(lat, lon, ftype)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"facilities": facilities})
}

func (h *DirectoryHandler) SearchMedicines(c *gin.Context) {
	respondOK(c, gin.H{"medicines": h.svc.SearchMedicines(c.Query("query"))})
}
