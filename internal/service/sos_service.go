package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/domain/sos"
	"github.com/healthease/healthease-api/pkg/events"
	"github.com/healthease/healthease-api/pkg/metrics"
)

type SOSService struct {
	repo      sos.Repository
	userRepo  UserRepository
	publisher events.Publisher
	auditSvc  *AuditService
	metrics   *metrics.Collector
	log       *zap.Logger
}

func NewSOSService(
	repo sos.Repository,
	userRepo UserRepository,
	publisher events.Publisher,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *SOSService {
	return &SOSService{
		repo:      repo,
		userRepo:  userRepo,
		publisher: publisher,
		auditSvc:  auditSvc,
		metrics:   m,
		log:       log,
	}
}

// TriggerAlert records an SOS emergency and fans it out to the alert topic.
// The database row is the source of truth; a publish failure is logged and
// counted but never fails the request.
func (s *SOSService) TriggerAlert(ctx context.Context, cmd *sos.TriggerAlertCommand, callerID uuid.UUID, callerRole string, ip string) (*sos.Alert, error) {
	if cmd.PatientID != callerID {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(cmd.EmergencyType) == "" {
		return nil, sos.ErrEmergencyTypeNeeded
	}

	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("loading patient: %w", err)
	}

	alert := &sos.Alert{
		PatientID:     cmd.PatientID,
		Location:      cmd.Location,
		EmergencyType: strings.TrimSpace(cmd.EmergencyType),
		Notes:         strings.TrimSpace(cmd.Notes),
		Status:        sos.StatusActive,
		PatientInfo: sos.PatientSnapshot{
			Name:              user.Name,
			BloodGroup:        user.Profile.BloodGroup,
			MedicalHistory:    user.Profile.MedicalHistory,
			Allergies:         user.Profile.Allergies,
			EmergencyContacts: user.Profile.EmergencyContacts,
		},
	}

	if err := s.repo.Create(ctx, alert); err != nil {
		s.log.Error("failed to persist sos alert", zap.Error(err))
		return nil, fmt.Errorf("creating sos alert: %w", err)
	}

	s.metrics.SOSTriggeredTotal.Inc()

	ev := events.SOSEvent{
		AlertID:       alert.ID,
		PatientID:     alert.PatientID,
		PatientName:   user.Name,
		BloodGroup:    user.Profile.BloodGroup,
		EmergencyType: alert.EmergencyType,
		Lat:           alert.Location.Lat,
		Lon:           alert.Location.Lon,
		TriggeredAt:   time.Now(),
	}
	if err := s.publisher.PublishSOS(ctx, ev); err != nil {
		s.metrics.SOSPublishFailures.Inc()
		s.log.Error("failed to publish sos event",
			zap.String("alert_id", alert.ID.String()),
			zap.Error(err),
		)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "sos_alert",
		ResourceID:   alert.ID.String(),
		IPAddress:    ip,
	})

	s.log.Info("sos alert triggered",
		zap.String("alert_id", alert.ID.String()),
		zap.String("emergency_type", alert.EmergencyType),
	)

	return alert, nil
}

func (s *SOSService) ListActiveAlerts(ctx context.Context, callerID uuid.UUID) ([]*sos.Alert, error) {
	return s.repo.ListActive(ctx, callerID)
}
