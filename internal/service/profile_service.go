package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/domain"
)

type UpdateProfileCommand struct {
	Name              string
	Age               *int
	Gender            domain.Gender
	BloodGroup        string
	Phone             string
	MedicalHistory    []string
	Allergies         []string
	EmergencyContacts []domain.EmergencyContact
}

type ProfileService struct {
	userRepo UserRepository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewProfileService(userRepo UserRepository, auditSvc *AuditService, log *zap.Logger) *ProfileService {
	return &ProfileService{userRepo: userRepo, auditSvc: auditSvc, log: log}
}

func (s *ProfileService) GetProfile(ctx context.Context, callerID uuid.UUID, ip string) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     string(u.Role),
		Action:       "read",
		ResourceType: "profile",
		ResourceID:   callerID.String(),
		IPAddress:    ip,
	})

	return u, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, callerID uuid.UUID, cmd *UpdateProfileCommand, ip string) (*domain.User, error) {
	if err := validateProfileCommand(cmd); err != nil {
		return nil, err
	}

	profile := domain.Profile{
		Age:               cmd.Age,
		Gender:            cmd.Gender,
		BloodGroup:        strings.TrimSpace(cmd.BloodGroup),
		Phone:             strings.TrimSpace(cmd.Phone),
		MedicalHistory:    emptyIfNil(cmd.MedicalHistory),
		Allergies:         emptyIfNil(cmd.Allergies),
		EmergencyContacts: cmd.EmergencyContacts,
	}
	if profile.EmergencyContacts == nil {
		profile.EmergencyContacts = []domain.EmergencyContact{}
	}

	u, err := s.userRepo.UpdateProfile(ctx, callerID, strings.TrimSpace(cmd.Name), profile)
	if err != nil {
		s.log.Error("failed to update profile", zap.Error(err))
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     string(u.Role),
		Action:       "update",
		ResourceType: "profile",
		ResourceID:   callerID.String(),
		IPAddress:    ip,
	})

	return u, nil
}

func validateProfileCommand(cmd *UpdateProfileCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Name) == "" {
		errs = append(errs, "name is required")
	}
	if cmd.Age != nil && (*cmd.Age < 0 || *cmd.Age > 150) {
		errs = append(errs, "age must be between 0 and 150")
	}
	if cmd.Gender != "" && !cmd.Gender.IsValid() {
		errs = append(errs, "gender is invalid")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
