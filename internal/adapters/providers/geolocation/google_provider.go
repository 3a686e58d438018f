package geolocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/domain/providers"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

const (
	googleGeocodeURL       = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// GoogleGeolocationProvider resolves addresses with the Google Geocoding API
type GoogleGeolocationProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGoogleGeolocationProvider creates a new Google geolocation provider. cache may be nil.
func NewGoogleGeolocationProvider(apiKey string, cache providers.CacheProvider) providers.GeolocationProvider {
	return NewGoogleGeolocationProviderWithOptions(apiKey, cache, googleGeocodeURL, nil)
}

// NewGoogleGeolocationProviderWithOptions allows overriding base URL and HTTP client.
func NewGoogleGeolocationProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleGeolocationProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    baseURL,
	}
}

// Geocode converts an address to coordinates
func (g *GoogleGeolocationProvider) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	cacheKey := "geo:geocode:" + hashKey(strings.ToLower(trimmed))
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil {
			var addr providers.GeocodedAddress
			if err := json.Unmarshal(cached, &addr); err == nil {
				return &addr, nil
			}
		}
	}

	resp, err := g.doGeocodeRequest(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no location found for %q", trimmed))
	}

	result := resp.Results[0]
	addr := providers.GeocodedAddress{
		FormattedAddress: result.FormattedAddress,
		Coordinates: providers.Coordinates{
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
		},
	}

	if g.cache != nil {
		if payload, err := json.Marshal(addr); err == nil {
			if err := g.cache.Set(ctx, cacheKey, payload, defaultGeocodeCacheTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache geocode result")
			}
		}
	}

	return &addr, nil
}

func (g *GoogleGeolocationProvider) doGeocodeRequest(ctx context.Context, address string) (*googleGeocodeResponse, error) {
	if g.apiKey == "" {
		return nil, apperrors.NewExternalError("geocoding is not configured", nil)
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build geocode request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(fmt.Sprintf("geocode request returned status %d", resp.StatusCode), nil)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode geocode response", err)
	}

	switch payload.Status {
	case "OK", "ZERO_RESULTS":
		return &payload, nil
	default:
		msg := "geocode request failed: " + payload.Status
		if payload.ErrorMessage != "" {
			msg += " - " + payload.ErrorMessage
		}
		return nil, apperrors.NewExternalError(msg, nil)
	}
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress string         `json:"formatted_address"`
	Geometry         googleGeometry `json:"geometry"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
