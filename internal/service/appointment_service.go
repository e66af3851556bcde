package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/domain/appointment"
	"github.com/healthease/healthease-api/internal/domain/directory"
	"github.com/healthease/healthease-api/pkg/metrics"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

type AppointmentService struct {
	repo     appointment.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{repo: repo, auditSvc: auditSvc, metrics: m, log: log}
}

func (s *AppointmentService) BookAppointment(
	ctx context.Context,
	cmd *appointment.BookAppointmentCommand,
	callerID uuid.UUID,
	callerRole string,
	ip string,
) (*appointment.Appointment, error) {
	// Patients can only book for themselves.
	if cmd.PatientID != callerID {
		return nil, ErrForbidden
	}

	if err := validateBookCommand(cmd); err != nil {
		return nil, err
	}

	if _, err := directory.DoctorByID(cmd.DoctorID); err != nil {
		return nil, appointment.ErrUnknownDoctor
	}

	a := &appointment.Appointment{
		PatientID: cmd.PatientID,
		DoctorID:  cmd.DoctorID,
		Date:      cmd.Date,
		Time:      cmd.Time,
		Type:      cmd.Type,
		Status:    appointment.StatusScheduled,
		Notes:     strings.TrimSpace(cmd.Notes),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}

	s.metrics.AppointmentsBookedTotal.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   a.ID.String(),
		IPAddress:    ip,
	})

	return a, nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.PatientID != callerID {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *AppointmentService) CancelAppointment(ctx context.Context, id uuid.UUID, reason string, callerID uuid.UUID, callerRole string, ip string) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.PatientID != callerID {
		return nil, ErrForbidden
	}

	if err := a.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("updating appointment status: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"status":"cancelled","reason":%q}`, reason),
	})

	return a, nil
}

func (s *AppointmentService) ListAppointments(ctx context.Context, q *appointment.ListAppointmentsQuery, callerID uuid.UUID) (*appointment.PagedAppointments, error) {
	// Callers only ever see their own appointments.
	q.PatientID = callerID

	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.repo.List(ctx, q)
}

func validateBookCommand(cmd *appointment.BookAppointmentCommand) error {
	var errs []string

	if cmd.DoctorID == "" {
		errs = append(errs, "doctor_id is required")
	}
	if !datePattern.MatchString(cmd.Date) {
		errs = append(errs, "date must be in YYYY-MM-DD format")
	}
	if !timePattern.MatchString(cmd.Time) {
		errs = append(errs, "time must be in HH:MM format")
	}
	if !cmd.Type.IsValid() {
		errs = append(errs, "type must be online or offline")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
