package service

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/healthease/healthease-api/internal/domain/directory"
)

// DirectoryService serves the static doctor, facility, and medicine
// catalogs. Facility lookups are cached by rounded coordinates the way a
// real places-API integration would be.
type DirectoryService struct {
	facilities *gocache.Cache
}

func NewDirectoryService(facilityCacheTTL time.Duration) *DirectoryService {
	return &DirectoryService{
		facilities: gocache.New(facilityCacheTTL, 2*facilityCacheTTL),
	}
}

func (s *DirectoryService) ListDoctors() []directory.Doctor {
	return directory.Doctors()
}

func (s *DirectoryService) GetDoctor(id string) (*directory.Doctor, error) {
	return directory.DoctorByID(id)
}

func (s *DirectoryService) NearbyFacilities(lat, lon float64, ftype directory.FacilityType) ([]directory.Facility, error) {
	if !ftype.IsValid() {
		return nil, directory.ErrInvalidFacilityType
	}

	key := facilityCacheKey(lat, lon, ftype)
	if cached, ok := s.facilities.Get(key); ok {
		return cached.([]directory.Facility), nil
	}

	results := directory.FacilitiesNear(lat, lon, ftype)
	s.facilities.Set(key, results, gocache.DefaultExpiration)
	return results, nil
}

func (s *DirectoryService) SearchMedicines(query string) []directory.Medicine {
	return directory.SearchMedicines(query)
}

// facilityCacheKey rounds coordinates to ~100m so nearby queries share an
// entry.
func facilityCacheKey(lat, lon float64, ftype directory.FacilityType) string {
	return fmt.Sprintf("%.3f:%.3f:%s", lat, lon, ftype)
}
