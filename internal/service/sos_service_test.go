package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/domain"
	"github.com/healthease/healthease-api/internal/domain/sos"
)

func sosTestUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		ID:       mustUUID(t),
		Email:    "pat@example.com",
		Name:     "Pat Smith",
		Role:     domain.RolePatient,
		IsActive: true,
		Profile: domain.Profile{
			BloodGroup:     "O+",
			MedicalHistory: []string{"diabetes"},
			Allergies:      []string{"penicillin"},
			EmergencyContacts: []domain.EmergencyContact{
				{Name: "Sam", Relationship: "spouse", Phone: "+1555"},
			},
		},
	}
}

func TestTriggerAlertSnapshotsPatient(t *testing.T) {
	user := sosTestUser(t)
	repo := newFakeSOSRepo()
	pub := &fakePublisher{}
	svc := NewSOSService(repo, newFakeUserRepo(user), pub, newTestAudit(), testMetrics, zap.NewNop())

	alert, err := svc.TriggerAlert(context.Background(), &sos.TriggerAlertCommand{
		PatientID:     user.ID,
		Location:      sos.Location{Lat: 12.97, Lon: 77.59, Address: "MG Road"},
		EmergencyType: "cardiac",
		Notes:         "chest pain",
	}, user.ID, "patient", "10.0.0.1")
	if err != nil {
		t.Fatalf("TriggerAlert: %v", err)
	}

	if alert.Status != sos.StatusActive {
		t.Errorf("status = %q, want active", alert.Status)
	}
	if alert.PatientInfo.Name != "Pat Smith" || alert.PatientInfo.BloodGroup != "O+" {
		t.Errorf("patient snapshot = %+v", alert.PatientInfo)
	}
	if len(alert.PatientInfo.Allergies) != 1 {
		t.Error("snapshot must carry allergies")
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.AlertID != alert.ID || ev.EmergencyType != "cardiac" || ev.Lat != 12.97 {
		t.Errorf("published event = %+v", ev)
	}
}

func TestTriggerAlertRequiresEmergencyType(t *testing.T) {
	user := sosTestUser(t)
	svc := NewSOSService(newFakeSOSRepo(), newFakeUserRepo(user), &fakePublisher{}, newTestAudit(), testMetrics, zap.NewNop())

	_, err := svc.TriggerAlert(context.Background(), &sos.TriggerAlertCommand{
		PatientID:     user.ID,
		EmergencyType: "   ",
	}, user.ID, "patient", "10.0.0.1")
	if !errors.Is(err, sos.ErrEmergencyTypeNeeded) {
		t.Fatalf("expected ErrEmergencyTypeNeeded, got %v", err)
	}
}

func TestTriggerAlertForbidsOtherPatients(t *testing.T) {
	user := sosTestUser(t)
	svc := NewSOSService(newFakeSOSRepo(), newFakeUserRepo(user), &fakePublisher{}, newTestAudit(), testMetrics, zap.NewNop())

	_, err := svc.TriggerAlert(context.Background(), &sos.TriggerAlertCommand{
		PatientID:     user.ID,
		EmergencyType: "cardiac",
	}, mustUUID(t), "patient", "10.0.0.1")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTriggerAlertSurvivesPublishFailure(t *testing.T) {
	user := sosTestUser(t)
	repo := newFakeSOSRepo()
	pub := &fakePublisher{err: errors.New("broker unreachable")}
	svc := NewSOSService(repo, newFakeUserRepo(user), pub, newTestAudit(), testMetrics, zap.NewNop())

	alert, err := svc.TriggerAlert(context.Background(), &sos.TriggerAlertCommand{
		PatientID:     user.ID,
		EmergencyType: "accident",
	}, user.ID, "patient", "10.0.0.1")
	if err != nil {
		t.Fatalf("a publish failure must not fail the alert: %v", err)
	}
	if _, found := repo.alerts[alert.ID]; !found {
		t.Error("alert must still be persisted")
	}
}

func TestListActiveAlerts(t *testing.T) {
	user := sosTestUser(t)
	repo := newFakeSOSRepo()
	svc := NewSOSService(repo, newFakeUserRepo(user), &fakePublisher{}, newTestAudit(), testMetrics, zap.NewNop())

	for range 2 {
		if _, err := svc.TriggerAlert(context.Background(), &sos.TriggerAlertCommand{
			PatientID:     user.ID,
			EmergencyType: "fall",
		}, user.ID, "patient", "10.0.0.1"); err != nil {
			t.Fatalf("TriggerAlert: %v", err)
		}
	}

	alerts, err := svc.ListActiveAlerts(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListActiveAlerts: %v", err)
	}
	if len(alerts) != 2 {
		t.Errorf("expected 2 active alerts, got %d", len(alerts))
	}
}
