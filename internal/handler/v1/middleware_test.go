package v1

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthease/healthease-api/internal/config"
	"github.com/healthease/healthease-api/internal/domain"
	"github.com/healthease/healthease-api/internal/domain/appointment"
	"github.com/healthease/healthease-api/internal/domain/report"
	"github.com/healthease/healthease-api/internal/ocr"
	"github.com/healthease/healthease-api/internal/service"
	"github.com/healthease/healthease-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "healthease-test",
	})
}

func TestAuthenticate(t *testing.T) {
	jwtManager := testJWTManager()
	sessionID := uuid.New()
	pair, err := jwtManager.GenerateTokenPair(&domain.Claims{
		UserID:    uuid.New(),
		Email:     "pat@example.com",
		Role:      domain.RolePatient,
		SessionID: &sessionID,
	})
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	router := gin.New()
	router.GET("/protected", Authenticate(jwtManager), func(c *gin.Context) {
		claims, ok := callerClaims(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token rejected", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"valid access token", "Bearer " + pair.AccessToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestRespondServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{domain.ErrUserNotFound, http.StatusNotFound},
		{appointment.ErrAppointmentNotFound, http.StatusNotFound},
		{report.ErrReportNotFound, http.StatusNotFound},
		{appointment.ErrInvalidStatusTransition, http.StatusBadRequest},
		{report.ErrUnsupportedFileType, http.StatusBadRequest},
		{&service.ValidationError{Fields: []string{"name is required"}}, http.StatusBadRequest},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{ocr.ErrUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("wrapped: %w", domain.ErrUserNotFound), http.StatusNotFound},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			respondServiceError(c, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestIDReusesIncoming(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get(headerRequestID); got != "req-abc" {
		t.Errorf("request id = %q, want req-abc", got)
	}

	// Without an incoming ID one gets generated.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(headerRequestID) == "" {
		t.Error("expected a generated request id")
	}
}

func TestRateLimit(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		BurstSize:         2,
	}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("burst requests must pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", statuses[2])
	}
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS(config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         12 * time.Hour,
	}))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("allow-origin = %q", got)
	}

	// Unlisted origins get no CORS headers.
	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unlisted origin must not be allowed")
	}
}
