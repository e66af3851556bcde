package directory

// Doctor is a bookable provider from the static catalog. There is no doctor
// administration surface; the catalog ships with the binary.
type Doctor struct {
	ID              string   `json:"doctor_id"`
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Rating          float64  `json:"rating"`
	Experience      string   `json:"experience"`
	ConsultationFee int      `json:"consultation_fee"`
	AvailableSlots  []string `json:"available_slots"`
	Image           string   `json:"image"`
}

var doctors = []Doctor{
	{
		ID:              "doc_001",
		Name:            "Dr. Sarah Johnson",
		Specialty:       "Cardiology",
		Rating:          4.8,
		Experience:      "15 years",
		ConsultationFee: 150,
		AvailableSlots:  []string{"09:00", "10:00", "11:00", "14:00", "15:00"},
		Image:           "https://images.unsplash.com/photo-1559839734-2b71ea197ec2?w=400",
	},
	{
		ID:              "doc_002",
		Name:            "Dr. Michael Chen",
		Specialty:       "General Medicine",
		Rating:          4.6,
		Experience:      "10 years",
		ConsultationFee: 100,
		AvailableSlots:  []string{"08:00", "09:00", "13:00", "16:00", "17:00"},
		Image:           "https://images.unsplash.com/photo-1612349317150-e413f6a5b16d?w=400",
	},
	{
		ID:              "doc_003",
		Name:            "Dr. Emily Watson",
		Specialty:       "Pediatrics",
		Rating:          4.9,
		Experience:      "12 years",
		ConsultationFee: 120,
		AvailableSlots:  []string{"10:00", "11:00", "14:00", "15:00", "16:00"},
		Image:           "https://images.unsplash.com/photo-1594824388558-b5f9c2b7e9fd?w=400",
	},
}

// Doctors returns a copy of the catalog so callers cannot mutate the seed.
func Doctors() []Doctor {
	out := make([]Doctor, len(doctors))
	copy(out, doctors)
	return out
}

// DoctorByID looks up a catalog entry. Returns ErrDoctorNotFound when the
// ID is unknown.
func DoctorByID(id string) (*Doctor, error) {
	for i := range doctors {
		if doctors[i].ID == id {
			d := doctors[i]
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}
