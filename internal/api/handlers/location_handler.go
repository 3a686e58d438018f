package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
)

// LocationService stores the caller's last known position
type LocationService interface {
	SaveUserLocation(ctx context.Context, latitude, longitude float64, address *string) (string, error)
	GetUserLocation(ctx context.Context) (*entities.UserLocation, error)
}

// LocationHandler handles /api/me/location
type LocationHandler struct {
	service LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

type saveLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   *string  `json:"address"`
}

// SaveLocation handles PUT /api/me/location
func (h *LocationHandler) SaveLocation(w http.ResponseWriter, r *http.Request) {
	var req saveLocationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		respondWithError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	id, err := h.service.SaveUserLocation(r.Context(), *req.Latitude, *req.Longitude, req.Address)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"id": id})
}

// GetLocation handles GET /api/me/location. Anonymous callers and users
// without a saved position get a JSON null.
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	location, err := h.service.GetUserLocation(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, location)
}
