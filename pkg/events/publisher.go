// Package events publishes domain events to the alert pipeline. The API
// writes SOS alerts to the database first; publishing is best-effort fan-out
// for downstream notifiers (SMS, hospital dispatch).
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SOSEvent is the wire shape written to the alert topic.
type SOSEvent struct {
	AlertID       uuid.UUID `json:"alert_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	BloodGroup    string    `json:"blood_group,omitempty"`
	EmergencyType string    `json:"emergency_type"`
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	TriggeredAt   time.Time `json:"triggered_at"`
}

type Publisher interface {
	PublishSOS(ctx context.Context, ev SOSEvent) error
	Close() error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishSOS(context.Context, SOSEvent) error { return nil }
func (NopPublisher) Close() error                               { return nil }
