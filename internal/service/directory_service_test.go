package service

import (
	"errors"
	"testing"
	"time"

	"github.com/healthease/healthease-api/internal/domain/directory"
)

func TestListDoctors(t *testing.T) {
	svc := NewDirectoryService(time.Minute)

	doctors := svc.ListDoctors()
	if len(doctors) == 0 {
		t.Fatal("catalog must not be empty")
	}
	for _, d := range doctors {
		if d.ID == "" || d.Name == "" || d.Specialty == "" {
			t.Errorf("incomplete doctor entry: %+v", d)
		}
	}
}

func TestGetDoctor(t *testing.T) {
	svc := NewDirectoryService(time.Minute)

	d, err := svc.GetDoctor("doc_001")
	if err != nil {
		t.Fatalf("GetDoctor: %v", err)
	}
	if d.Name != "Dr. Sarah Johnson" {
		t.Errorf("name = %q", d.Name)
	}

	if _, err := svc.GetDoctor("doc_404"); !errors.Is(err, directory.ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestNearbyFacilitiesOffsetsFromCaller(t *testing.T) {
	svc := NewDirectoryService(time.Minute)

	facilities, err := svc.NearbyFacilities(12.9716, 77.5946, directory.FacilityAll)
	if err != nil {
		t.Fatalf("NearbyFacilities: %v", err)
	}
	if len(facilities) != 3 {
		t.Fatalf("expected 3 facilities, got %d", len(facilities))
	}
	for _, f := range facilities {
		if f.Lat == 12.9716 && f.Lon == 77.5946 {
			t.Errorf("facility %s must be offset from the query point", f.ID)
		}
	}
}

func TestNearbyFacilitiesFiltersByType(t *testing.T) {
	svc := NewDirectoryService(time.Minute)

	facilities, err := svc.NearbyFacilities(12.9716, 77.5946, directory.FacilityHospital)
	if err != nil {
		t.Fatalf("NearbyFacilities: %v", err)
	}
	for _, f := range facilities {
		if f.Type != directory.FacilityHospital {
			t.Errorf("got facility of type %q", f.Type)
		}
	}
}

func TestNearbyFacilitiesRejectsUnknownType(t *testing.T) {
	svc := NewDirectoryService(time.Minute)

	if _, err := svc.NearbyFacilities(0, 0, "spa"); !errors.Is(err, directory.ErrInvalidFacilityType) {
		t.Fatalf("expected ErrInvalidFacilityType, got %v", err)
	}
}

func TestNearbyFacilitiesCachesByRoundedCoords(t *testing.T) {
	svc := NewDirectoryService(time.Minute)

	first, err := svc.NearbyFacilities(12.97163, 77.59461, directory.FacilityAll)
	if err != nil {
		t.Fatalf("NearbyFacilities: %v", err)
	}
	// Within ~100m the rounded key is identical, so the cached slice
	// computed from the first coordinates comes back.
	second, err := svc.NearbyFacilities(12.97158, 77.59455, directory.FacilityAll)
	if err != nil {
		t.Fatalf("NearbyFacilities: %v", err)
	}
	if &first[0] != &second[0] {
		t.Error("expected the cached result for a nearby query")
	}
}

func TestSearchMedicines(t *testing.T) {
	svc := NewDirectoryService(time.Minute)

	if got := svc.SearchMedicines(""); len(got) == 0 {
		t.Error("empty query must return the full catalog")
	}

	byName := svc.SearchMedicines("paracetamol")
	if len(byName) != 1 || byName[0].ID != "med_001" {
		t.Errorf("search by name = %+v", byName)
	}

	byGeneric := svc.SearchMedicines("ACETAMINOPHEN")
	if len(byGeneric) != 1 || byGeneric[0].ID != "med_001" {
		t.Errorf("generic-name search must be case-insensitive, got %+v", byGeneric)
	}

	if got := svc.SearchMedicines("unobtainium"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}
