package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthease/healthease-api/internal/domain"
	"github.com/healthease/healthease-api/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type exchangeSessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type userResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Picture     string         `json:"picture,omitempty"`
	Role        domain.Role    `json:"role"`
	Profile     domain.Profile `json:"profile"`
	CreatedAt   time.Time      `json:"created_at"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
}

type sessionResponse struct {
	Tokens *domain.TokenPair `json:"tokens"`
	User   userResponse      `json:"user"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Picture:     u.Picture,
		Role:        u.Role,
		Profile:     u.Profile,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// ExchangeSession trades a provider session for a local token pair,
// provisioning the user on first sign-in.
func (h *AuthHandler) ExchangeSession(c *gin.Context) {
	var req exchangeSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, user, err := h.svc.ExchangeSession(c.Request.Context(), req.SessionID, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, sessionResponse{Tokens: tokens, User: toUserResponse(user)})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req refreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	if err := h.svc.Logout(c.Request.Context(), claims); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse[any]{Message: "logged out"})
}
