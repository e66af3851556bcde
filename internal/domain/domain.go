package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RolePatient Role = "patient"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePatient:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Profile holds the patient-editable health document attached to a user.
type Profile struct {
	Age               *int               `json:"age,omitempty"`
	Gender            Gender             `json:"gender,omitempty"`
	BloodGroup        string             `json:"blood_group,omitempty"`
	Phone             string             `json:"phone,omitempty"`
	MedicalHistory    []string           `json:"medical_history"`
	Allergies         []string           `json:"allergies"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts"`
}

// User is provisioned on first sign-in through the external identity
// provider; there is no local password.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`

	Email   string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Name    string `gorm:"column:name;type:varchar(200);not null"`
	Picture string `gorm:"column:picture;type:text"`
	Role    Role   `gorm:"column:role;type:varchar(30);not null;index"`

	Profile Profile `gorm:"column:profile;serializer:json"`

	IsActive    bool       `gorm:"column:is_active;default:true;index"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
}

func (User) TableName() string {
	return "auth.users"
}

// Session tracks an issued refresh token. The token itself is never stored;
// only its bcrypt hash is, so a database leak does not yield usable tokens.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	UserID           uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	RefreshTokenHash string     `gorm:"column:refresh_token_hash;type:varchar(100);not null"`
	ExpiresAt        time.Time  `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time `gorm:"column:revoked_at"`

	// External identity provider session this login originated from.
	ProviderSessionID string `gorm:"column:provider_session_id;type:varchar(100);index"`
}

func (Session) TableName() string {
	return "auth.sessions"
}

func (s *Session) IsUsable(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionRead   AuditAction = "read"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
	ActionLogin  AuditAction = "login"
)

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	// Who
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	UserRole  Role      `gorm:"column:user_role;type:varchar(30);not null"`
	IPAddress string    `gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6

	// What
	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(50);index"`

	RequestID  string `gorm:"column:request_id;type:varchar(50);index"`
	UserAgent  string `gorm:"column:user_agent;type:text"`
	StatusCode int    `gorm:"column:status_code"`

	Changes string `gorm:"column:changes;type:jsonb"`
}

func (AuditLog) TableName() string {
	return "audit.logs"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

type Claims struct {
	UserID    uuid.UUID  `json:"sub"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
}
