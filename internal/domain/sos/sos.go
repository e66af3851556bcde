package sos

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthease/healthease-api/internal/domain"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
)

type Location struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address,omitempty"`
}

// PatientSnapshot freezes the medical details responders need at the moment
// the alert fires. Later profile edits must not change an existing alert.
type PatientSnapshot struct {
	Name              string                    `json:"name"`
	BloodGroup        string                    `json:"blood_group,omitempty"`
	MedicalHistory    []string                  `json:"medical_history"`
	Allergies         []string                  `json:"allergies"`
	EmergencyContacts []domain.EmergencyContact `json:"emergency_contacts"`
}

type Alert struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	PatientID     uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	Location      Location  `gorm:"column:location;serializer:json"`
	EmergencyType string    `gorm:"column:emergency_type;type:varchar(100);not null"`
	Notes         string    `gorm:"column:notes;type:text"`
	Status        Status    `gorm:"column:status;type:varchar(20);not null;default:'active';index"`

	PatientInfo PatientSnapshot `gorm:"column:patient_info;serializer:json"`

	ResolvedAt *time.Time `gorm:"column:resolved_at"`
}

func (Alert) TableName() string {
	return "clinical.sos_alerts"
}

type TriggerAlertCommand struct {
	PatientID     uuid.UUID
	Location      Location
	EmergencyType string
	Notes         string
}
