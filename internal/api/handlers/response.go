package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an error to its HTTP status. Causes of internal
// and upstream failures are logged, never returned.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	respondWithError(w, status, apperrors.PublicMessage(err))
}

// optionalFloat parses a float query parameter. A missing or blank value
// yields nil.
func optionalFloat(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid " + name + " parameter")
	}
	return &v, nil
}

func optionalBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.NewValidationError("invalid " + name + " parameter")
	}
	return v, nil
}
