package entities

import (
	"time"

	"github.com/google/uuid"
)

// HospitalEventType represents the type of hospital event
type HospitalEventType string

const (
	HospitalEventTypeCreated HospitalEventType = "hospital_created"
	HospitalEventTypeSeeded  HospitalEventType = "hospitals_seeded"
)

// HospitalEvent is published after the hospital collection changes
type HospitalEvent struct {
	ID         string            `json:"id"`
	HospitalID string            `json:"hospital_id,omitempty"`
	EventType  HospitalEventType `json:"event_type"`
	Timestamp  time.Time         `json:"timestamp"`
	Latitude   float64           `json:"latitude"`
	Longitude  float64           `json:"longitude"`
}

// NewHospitalEvent creates a new hospital event
func NewHospitalEvent(eventType HospitalEventType, hospital *Hospital) *HospitalEvent {
	event := &HospitalEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
	if hospital != nil {
		event.HospitalID = hospital.ID
		event.Latitude = hospital.Latitude
		event.Longitude = hospital.Longitude
	}
	return event
}
