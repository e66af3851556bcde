package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/healthease/healthease-api/internal/config"
	"github.com/healthease/healthease-api/internal/domain"
)

func testManager(accessTTL time.Duration) *JWTManager {
	return NewJWTManager(config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "healthease-test",
	})
}

func testClaims() *domain.Claims {
	sessionID := uuid.New()
	return &domain.Claims{
		UserID:    uuid.New(),
		Email:     "patient@example.com",
		Role:      domain.RolePatient,
		SessionID: &sessionID,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := testManager(15 * time.Minute)
	in := testClaims()

	pair, err := m.GenerateTokenPair(in)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", pair.TokenType)
	}

	got, err := m.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if got.UserID != in.UserID || got.Email != in.Email || got.Role != in.Role {
		t.Errorf("claims round trip mismatch: got %+v, want %+v", got, in)
	}
	if got.SessionID == nil || *got.SessionID != *in.SessionID {
		t.Errorf("session ID did not survive round trip")
	}
}

func TestValidateRejectsWrongTokenType(t *testing.T) {
	m := testManager(15 * time.Minute)

	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := m.ValidateAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("validating refresh token as access: err = %v, want ErrTokenTypeMismatch", err)
	}
	if _, err := m.ValidateRefreshToken(pair.AccessToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Errorf("validating access token as refresh: err = %v, want ErrTokenTypeMismatch", err)
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	// NotBefore skew is -10s, so a negative TTL beyond that yields an
	// already-expired but otherwise well-formed token.
	m := testManager(-time.Hour)

	pair, err := m.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := m.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	m := testManager(15 * time.Minute)
	other := NewJWTManager(config.JWTConfig{
		Secret:          "ffffffffffffffffffffffffffffffff",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "healthease-test",
	})

	pair, err := other.GenerateTokenPair(testClaims())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	if _, err := m.ValidateAccessToken(pair.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := testManager(15 * time.Minute)
	if _, err := m.ValidateAccessToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
