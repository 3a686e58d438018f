package entities

import "time"

// UserLocation is the last position saved by an authenticated user.
// There is at most one per user.
type UserLocation struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	Address     *string   `json:"address,omitempty" db:"address"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}
