package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/domain"
)

func TestUpdateProfile(t *testing.T) {
	user := &domain.User{ID: mustUUID(t), Email: "pat@example.com", Name: "Pat", Role: domain.RolePatient, IsActive: true}
	repo := newFakeUserRepo(user)
	svc := NewProfileService(repo, newTestAudit(), zap.NewNop())
	age := 34

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileCommand{
		Name:       "  Pat Smith  ",
		Age:        &age,
		Gender:     domain.GenderFemale,
		BloodGroup: "O+",
		Phone:      "+15550100",
	}, "10.0.0.1")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if updated.Name != "Pat Smith" {
		t.Errorf("name = %q, want trimmed", updated.Name)
	}
	if updated.Profile.Age == nil || *updated.Profile.Age != 34 {
		t.Error("age not persisted")
	}
	if updated.Profile.MedicalHistory == nil || updated.Profile.Allergies == nil || updated.Profile.EmergencyContacts == nil {
		t.Error("omitted slices must come back empty, not nil")
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	user := &domain.User{ID: mustUUID(t), Email: "pat@example.com", Name: "Pat", Role: domain.RolePatient}
	svc := NewProfileService(newFakeUserRepo(user), newTestAudit(), zap.NewNop())
	badAge := 200

	tests := []struct {
		name  string
		cmd   UpdateProfileCommand
		field string
	}{
		{"empty name", UpdateProfileCommand{Name: "   "}, "name"},
		{"age out of range", UpdateProfileCommand{Name: "Pat", Age: &badAge}, "age"},
		{"bad gender", UpdateProfileCommand{Name: "Pat", Gender: "robot"}, "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), user.ID, &tt.cmd, "10.0.0.1")
			var validErr *ValidationError
			if !errors.As(err, &validErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, f := range validErr.Fields {
				if strings.Contains(f, tt.field) {
					found = true
				}
			}
			if !found {
				t.Errorf("fields %v do not mention %q", validErr.Fields, tt.field)
			}
		})
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := NewProfileService(newFakeUserRepo(), newTestAudit(), zap.NewNop())

	_, err := svc.GetProfile(context.Background(), mustUUID(t), "10.0.0.1")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
