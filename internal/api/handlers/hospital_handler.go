package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zatekoja/hospitallocator/internal/application/services"
	"github.com/zatekoja/hospitallocator/internal/domain/entities"
)

const maxBodyBytes = 1 << 20

// HospitalService is the hospital query and admin surface used by the handler
type HospitalService interface {
	GetNearbyHospitals(ctx context.Context, params services.NearbyParams) ([]*entities.HospitalWithDistance, error)
	SearchHospitals(ctx context.Context, params services.SearchParams) ([]*entities.HospitalWithDistance, error)
	GetHospitalByID(ctx context.Context, id string) (*entities.Hospital, error)
	CreateHospital(ctx context.Context, hospital *entities.Hospital) (*entities.Hospital, error)
	SeedHospitals(ctx context.Context) (string, error)
	ListTypes() []string
}

// HospitalHandler handles hospital-related HTTP requests
type HospitalHandler struct {
	service HospitalService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(service HospitalService) *HospitalHandler {
	return &HospitalHandler{service: service}
}

// GetNearbyHospitals handles GET /api/hospitals/nearby?lat=&lon=&radius=&type=&emergencyOnly=
func (h *HospitalHandler) GetNearbyHospitals(w http.ResponseWriter, r *http.Request) {
	lat, err := optionalFloat(r, "lat")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	lon, err := optionalFloat(r, "lon")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if lat == nil || lon == nil {
		respondWithError(w, http.StatusBadRequest, "lat and lon parameters are required")
		return
	}
	radius, err := optionalFloat(r, "radius")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	emergencyOnly, err := optionalBool(r, "emergencyOnly")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	hospitals, err := h.service.GetNearbyHospitals(r.Context(), services.NearbyParams{
		Latitude:      *lat,
		Longitude:     *lon,
		RadiusKm:      radius,
		Type:          strings.TrimSpace(r.URL.Query().Get("type")),
		EmergencyOnly: emergencyOnly,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// SearchHospitals handles GET /api/hospitals/search?q=&lat=&lon=&type=&emergencyOnly=
func (h *HospitalHandler) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	lat, err := optionalFloat(r, "lat")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	lon, err := optionalFloat(r, "lon")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	emergencyOnly, err := optionalBool(r, "emergencyOnly")
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	hospitals, err := h.service.SearchHospitals(r.Context(), services.SearchParams{
		Term:          r.URL.Query().Get("q"),
		Latitude:      lat,
		Longitude:     lon,
		Type:          strings.TrimSpace(r.URL.Query().Get("type")),
		EmergencyOnly: emergencyOnly,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	hospital, err := h.service.GetHospitalByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if hospital == nil {
		respondWithError(w, http.StatusNotFound, "hospital not found")
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}

type createHospitalRequest struct {
	Name           string                   `json:"name"`
	Address        string                   `json:"address"`
	Phone          string                   `json:"phone"`
	Email          string                   `json:"email"`
	Website        string                   `json:"website"`
	Latitude       *float64                 `json:"latitude"`
	Longitude      *float64                 `json:"longitude"`
	Type           string                   `json:"type"`
	Services       []string                 `json:"services"`
	Rating         *float64                 `json:"rating"`
	IsEmergency    bool                     `json:"is_emergency"`
	OperatingHours *entities.OperatingHours `json:"operating_hours"`
}

// CreateHospital handles POST /api/hospitals
func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req createHospitalRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		respondWithError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	hospital := &entities.Hospital{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Type:        req.Type,
		Services:    req.Services,
		Rating:      req.Rating,
		IsEmergency: req.IsEmergency,
	}
	if req.OperatingHours != nil {
		hospital.OperatingHours = *req.OperatingHours
	}

	created, err := h.service.CreateHospital(r.Context(), hospital)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// SeedHospitals handles POST /api/hospitals/seed
func (h *HospitalHandler) SeedHospitals(w http.ResponseWriter, r *http.Request) {
	message, err := h.service.SeedHospitals(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}

// ListHospitalTypes handles GET /api/hospital-types
func (h *HospitalHandler) ListHospitalTypes(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"types": h.service.ListTypes(),
	})
}

var _ HospitalService = (*services.HospitalService)(nil)
