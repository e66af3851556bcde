package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthease/healthease-api/internal/domain"
	"github.com/healthease/healthease-api/internal/identity"
	"github.com/healthease/healthease-api/pkg/auth"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, name string, p domain.Profile) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Revoke(ctx context.Context, id uuid.UUID) error
}

type AuthService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	provider    identity.Client
	jwtManager  *auth.JWTManager
	refreshTTL  time.Duration
	auditSvc    *AuditService
	log         *zap.Logger
}

func NewAuthService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	provider identity.Client,
	jwtManager *auth.JWTManager,
	refreshTTL time.Duration,
	auditSvc *AuditService,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		provider:    provider,
		jwtManager:  jwtManager,
		refreshTTL:  refreshTTL,
		auditSvc:    auditSvc,
		log:         log,
	}
}

// ExchangeSession trades an external identity-provider session for a local
// token pair, provisioning the user on first sight.
func (s *AuthService) ExchangeSession(ctx context.Context, providerSessionID, ip string) (*domain.TokenPair, *domain.User, error) {
	if providerSessionID == "" {
		return nil, nil, &ValidationError{Fields: []string{"session_id is required"}}
	}

	data, err := s.provider.ResolveSession(ctx, providerSessionID)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidSession) {
			return nil, nil, ErrInvalidCredentials
		}
		s.log.Error("identity provider call failed", zap.Error(err))
		return nil, nil, fmt.Errorf("resolving session: %w", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, data.Email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		user = &domain.User{
			Email:   data.Email,
			Name:    data.Name,
			Picture: data.Picture,
			Role:    domain.RolePatient,
			Profile: domain.Profile{
				MedicalHistory:    []string{},
				Allergies:         []string{},
				EmergencyContacts: []domain.EmergencyContact{},
			},
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			s.log.Error("failed to provision user", zap.Error(err))
			return nil, nil, fmt.Errorf("creating user: %w", err)
		}
		s.log.Info("user provisioned",
			zap.String("user_id", user.ID.String()),
		)
	case err != nil:
		return nil, nil, fmt.Errorf("looking up user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueSession(ctx, user, providerSessionID)
	if err != nil {
		return nil, nil, err
	}

	_ = s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now())

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       user.ID,
		UserRole:     string(user.Role),
		Action:       "login",
		ResourceType: "session",
		IPAddress:    ip,
	})

	return pair, user, nil
}

// RefreshToken rotates a refresh token: the presented token is checked
// against the stored hash, the old session is revoked, and a new pair is
// issued under a fresh session.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil || claims.SessionID == nil {
		return nil, ErrInvalidCredentials
	}

	session, err := s.sessionRepo.GetByID(ctx, *claims.SessionID)
	if err != nil || !session.IsUsable(time.Now()) {
		return nil, ErrInvalidCredentials
	}

	digest := tokenDigest(refreshToken)
	if err := bcrypt.CompareHashAndPassword([]byte(session.RefreshTokenHash), digest); err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("revoking session: %w", err)
	}

	return s.issueSession(ctx, user, session.ProviderSessionID)
}

// Logout revokes the session carried in the caller's claims.
func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	if claims.SessionID == nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, *claims.SessionID)
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User, providerSessionID string) (*domain.TokenPair, error) {
	sessionID := uuid.New()

	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		SessionID: &sessionID,
	})
	if err != nil {
		s.log.Error("failed to generate token pair", zap.Error(err))
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(tokenDigest(pair.RefreshToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing refresh token: %w", err)
	}

	session := &domain.Session{
		ID:                sessionID,
		UserID:            user.ID,
		RefreshTokenHash:  string(hash),
		ExpiresAt:         time.Now().Add(s.refreshTTL),
		ProviderSessionID: providerSessionID,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return pair, nil
}

// tokenDigest pre-hashes the token so the bcrypt input stays under its
// 72-byte limit regardless of JWT length.
func tokenDigest(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
