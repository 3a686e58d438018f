package handlers

import (
	"net/http"
	"strings"

	"github.com/zatekoja/hospitallocator/internal/domain/providers"
)

// GeolocationHandler handles geolocation endpoints.
type GeolocationHandler struct {
	provider providers.GeolocationProvider
}

// NewGeolocationHandler creates a new geolocation handler.
func NewGeolocationHandler(provider providers.GeolocationProvider) *GeolocationHandler {
	return &GeolocationHandler{provider: provider}
}

// Geocode handles GET /api/geocode?address=...
func (h *GeolocationHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		respondWithError(w, http.StatusBadRequest, "address parameter is required")
		return
	}

	geocoded, err := h.provider.Geocode(r.Context(), address)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"address":           address,
		"formatted_address": geocoded.FormattedAddress,
		"lat":               geocoded.Coordinates.Latitude,
		"lon":               geocoded.Coordinates.Longitude,
	})
}
