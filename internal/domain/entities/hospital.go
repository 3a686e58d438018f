package entities

import (
	"time"
)

// Known hospital type labels. The set is open; these are the values the
// seeded data and the filter UI use.
const (
	HospitalTypeGeneral   = "general"
	HospitalTypeSpecialty = "specialty"
	HospitalTypeEmergency = "emergency"
	HospitalTypeClinic    = "clinic"
)

// KnownHospitalTypes returns the hospital type labels offered as filters.
func KnownHospitalTypes() []string {
	return []string{
		HospitalTypeGeneral,
		HospitalTypeSpecialty,
		HospitalTypeEmergency,
		HospitalTypeClinic,
	}
}

// Hospital represents a healthcare facility that can be located on the map
type Hospital struct {
	ID             string         `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Address        string         `json:"address" db:"address"`
	Phone          string         `json:"phone,omitempty" db:"phone"`
	Email          string         `json:"email,omitempty" db:"email"`
	Website        string         `json:"website,omitempty" db:"website"`
	Latitude       float64        `json:"latitude" db:"latitude"`
	Longitude      float64        `json:"longitude" db:"longitude"`
	Type           string         `json:"type" db:"type"`
	Services       []string       `json:"services" db:"-"`
	Rating         *float64       `json:"rating,omitempty" db:"rating"`
	IsEmergency    bool           `json:"is_emergency" db:"is_emergency"`
	OperatingHours OperatingHours `json:"operating_hours" db:"-"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}

// OperatingHours holds one free-text schedule per weekday, e.g. "24/7" or "8:00 AM - 6:00 PM".
type OperatingHours struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

// AllDay returns operating hours with the same schedule every day.
func AllDay(schedule string) OperatingHours {
	return OperatingHours{
		Monday:    schedule,
		Tuesday:   schedule,
		Wednesday: schedule,
		Thursday:  schedule,
		Friday:    schedule,
		Saturday:  schedule,
		Sunday:    schedule,
	}
}

// HospitalWithDistance is a query result: a hospital plus its distance in
// kilometers from the caller's reference point. Distance is nil when the
// query carried no reference point.
type HospitalWithDistance struct {
	Hospital
	Distance *float64 `json:"distance,omitempty"`
}
