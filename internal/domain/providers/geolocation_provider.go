package providers

import (
	"context"
)

// GeolocationProvider resolves an address typed by a user into coordinates
type GeolocationProvider interface {
	Geocode(ctx context.Context, address string) (*GeocodedAddress, error)
}

// Coordinates represents geographical coordinates
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodedAddress represents a geocoded address
type GeocodedAddress struct {
	FormattedAddress string      `json:"formatted_address"`
	Coordinates      Coordinates `json:"coordinates"`
}
