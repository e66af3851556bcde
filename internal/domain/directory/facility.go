package directory

// FacilityType filters nearby-facility lookups. TypeAll disables filtering.
type FacilityType string

const (
	FacilityAll      FacilityType = "all"
	FacilityHospital FacilityType = "hospital"
	FacilityClinic   FacilityType = "clinic"
	FacilityPharmacy FacilityType = "pharmacy"
)

func (t FacilityType) IsValid() bool {
	switch t {
	case FacilityAll, FacilityHospital, FacilityClinic, FacilityPharmacy:
		return true
	}
	return false
}

type Facility struct {
	ID       string       `json:"facility_id"`
	Name     string       `json:"name"`
	Type     FacilityType `json:"type"`
	Address  string       `json:"address"`
	Phone    string       `json:"phone"`
	Rating   float64      `json:"rating"`
	Distance string       `json:"distance"`
	Lat      float64      `json:"lat"`
	Lon      float64      `json:"lng"`
	Services []string     `json:"services"`
	Open24x7 bool         `json:"open_24_7"`
}

// facilityTemplate seeds the mock nearby lookup. LatOffset/LonOffset are
// applied to the caller's coordinates so results appear around the query
// point, mimicking what a places API would return.
type facilityTemplate struct {
	Facility
	LatOffset float64
	LonOffset float64
}

var facilityTemplates = []facilityTemplate{
	{
		Facility: Facility{
			ID:       "fac_001",
			Name:     "City General Hospital",
			Type:     FacilityHospital,
			Address:  "123 Main Street, Downtown",
			Phone:    "(555) 123-4567",
			Rating:   4.5,
			Distance: "0.8 km",
			Services: []string{"Emergency", "Surgery", "ICU", "Pharmacy"},
			Open24x7: true,
		},
		LatOffset: 0.005,
		LonOffset: 0.005,
	},
	{
		Facility: Facility{
			ID:       "fac_002",
			Name:     "MediCare Clinic",
			Type:     FacilityClinic,
			Address:  "456 Oak Avenue, Midtown",
			Phone:    "(555) 987-6543",
			Rating:   4.2,
			Distance: "1.2 km",
			Services: []string{"General Medicine", "Pediatrics", "Lab Tests"},
			Open24x7: false,
		},
		LatOffset: -0.008,
		LonOffset: 0.003,
	},
	{
		Facility: Facility{
			ID:       "fac_003",
			Name:     "QuickCare Pharmacy",
			Type:     FacilityPharmacy,
			Address:  "789 Pine Street, Uptown",
			Phone:    "(555) 456-7890",
			Rating:   4.0,
			Distance: "0.5 km",
			Services: []string{"Prescription", "OTC Medicine", "Health Supplies"},
			Open24x7: false,
		},
		LatOffset: 0.002,
		LonOffset: -0.007,
	},
}

// FacilitiesNear materializes the mock catalog around the given coordinates,
// optionally filtered by type.
func FacilitiesNear(lat, lon float64, ftype FacilityType) []Facility {
	out := make([]Facility, 0, len(facilityTemplates))
	for _, tpl := range facilityTemplates {
		if ftype != FacilityAll && tpl.Type != ftype {
			continue
		}
		f := tpl.Facility
		f.Lat = lat + tpl.LatOffset
		f.Lon = lon + tpl.LonOffset
		f.Services = append([]string(nil), tpl.Services...)
		out = append(out, f)
	}
	return out
}
