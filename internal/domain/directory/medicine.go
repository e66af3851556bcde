package directory

import "strings"

type Medicine struct {
	ID                   string  `json:"medicine_id"`
	Name                 string  `json:"name"`
	GenericName          string  `json:"generic_name"`
	Manufacturer         string  `json:"manufacturer"`
	Price                float64 `json:"price"`
	Category             string  `json:"category"`
	PrescriptionRequired bool    `json:"prescription_required"`
	Stock                int     `json:"stock"`
}

var medicines = []Medicine{
	{
		ID:                   "med_001",
		Name:                 "Paracetamol 500mg",
		GenericName:          "Acetaminophen",
		Manufacturer:         "ABC Pharma",
		Price:                5.99,
		Category:             "Pain Relief",
		PrescriptionRequired: false,
		Stock:                100,
	},
	{
		ID:                   "med_002",
		Name:                 "Amoxicillin 250mg",
		GenericName:          "Amoxicillin",
		Manufacturer:         "XYZ Labs",
		Price:                12.50,
		Category:             "Antibiotic",
		PrescriptionRequired: true,
		Stock:                50,
	},
	{
		ID:                   "med_003",
		Name:                 "Lisinopril 10mg",
		GenericName:          "Lisinopril",
		Manufacturer:         "MediCorp",
		Price:                8.75,
		Category:             "Blood Pressure",
		PrescriptionRequired: true,
		Stock:                75,
	},
}

// SearchMedicines matches query case-insensitively against name and generic
// name. An empty query returns the whole catalog.
func SearchMedicines(query string) []Medicine {
	if query == "" {
		out := make([]Medicine, len(medicines))
		copy(out, medicines)
		return out
	}

	q := strings.ToLower(query)
	out := make([]Medicine, 0, len(medicines))
	for _, m := range medicines {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.GenericName), q) {
			out = append(out, m)
		}
	}
	return out
}
