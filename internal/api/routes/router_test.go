package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitallocator/internal/adapters/memory"
	"github.com/zatekoja/hospitallocator/internal/adapters/providers/geolocation"
	"github.com/zatekoja/hospitallocator/internal/api/handlers"
	"github.com/zatekoja/hospitallocator/internal/api/routes"
	"github.com/zatekoja/hospitallocator/internal/application/services"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/auth"
)

type apiFixture struct {
	server *httptest.Server
	token  string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	identity := auth.ContextIdentity{}
	hospitalService := services.NewHospitalService(memory.NewHospitalRepository(), nil, identity)
	locationService := services.NewLocationService(memory.NewUserLocationRepository(), identity)
	manager := auth.NewManager("router-test-secret", time.Hour)

	router := routes.NewRouter(
		handlers.NewHospitalHandler(hospitalService),
		handlers.NewLocationHandler(locationService),
		handlers.NewGeolocationHandler(geolocation.NewStaticGeolocationProvider()),
		manager,
		[]string{"*"},
		nil,
	)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)

	token, err := manager.GenerateAccessToken("user-1")
	require.NoError(t, err)

	return &apiFixture{server: server, token: token}
}

func (f *apiFixture) do(t *testing.T, method, path, body string, authenticated bool) (*http.Response, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func names(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	list, ok := body["hospitals"].([]interface{})
	require.True(t, ok)
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.(map[string]interface{})["name"].(string))
	}
	return out
}

func TestRouter_Health(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_SeedThenQuery(t *testing.T) {
	f := newAPIFixture(t)

	resp, _ := f.do(t, http.MethodPost, "/api/hospitals/seed", "", false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := f.do(t, http.MethodPost, "/api/hospitals/seed", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Seeded 5 hospitals", body["message"])

	_, body = f.do(t, http.MethodPost, "/api/hospitals/seed", "", true)
	assert.Equal(t, services.SeedMessageAlreadySeeded, body["message"])

	resp, body = f.do(t, http.MethodGet, "/api/hospitals/nearby?lat=40.7128&lon=-74.0060", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(5), body["count"])
	assert.Equal(t, []string{
		"City General Hospital",
		"Emergency Care Plus",
		"Heart Specialty Center",
		"St. Mary's Medical Center",
		"Riverside Clinic",
	}, names(t, body))

	_, body = f.do(t, http.MethodGet, "/api/hospitals/nearby?lat=40.7128&lon=-74.0060&radius=1", "", false)
	assert.Equal(t, []string{"City General Hospital"}, names(t, body))

	_, body = f.do(t, http.MethodGet, "/api/hospitals/nearby?lat=40.7128&lon=-74.0060&emergencyOnly=true&type=emergency", "", false)
	assert.Equal(t, []string{"Emergency Care Plus"}, names(t, body))

	_, body = f.do(t, http.MethodGet, "/api/hospitals/search?q=clinic", "", false)
	assert.Equal(t, []string{"Riverside Clinic"}, names(t, body))

	resp, _ = f.do(t, http.MethodGet, "/api/hospitals/search?q=%20%20", "", false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_GetHospital(t *testing.T) {
	f := newAPIFixture(t)

	resp, body := f.do(t, http.MethodPost, "/api/hospitals",
		`{"name":"Harbor Clinic","latitude":40.70,"longitude":-74.01,"type":"clinic"}`, true)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	resp, body = f.do(t, http.MethodGet, "/api/hospitals/"+id, "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Harbor Clinic", body["name"])

	resp, body = f.do(t, http.MethodGet, "/api/hospitals/does-not-exist", "", false)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestRouter_UserLocation(t *testing.T) {
	f := newAPIFixture(t)

	resp, _ := f.do(t, http.MethodPut, "/api/me/location", `{"latitude":40.75,"longitude":-73.98}`, false)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := f.do(t, http.MethodPut, "/api/me/location", `{"latitude":40.75,"longitude":-73.98}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	firstID := body["id"]

	_, body = f.do(t, http.MethodPut, "/api/me/location", `{"latitude":40.76,"longitude":-73.97,"address":"Midtown"}`, true)
	assert.Equal(t, firstID, body["id"])

	resp, body = f.do(t, http.MethodGet, "/api/me/location", "", true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 40.76, body["latitude"])
	assert.Equal(t, "Midtown", body["address"])

	resp, body = f.do(t, http.MethodGet, "/api/me/location", "", false)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body)
}

func TestRouter_Geocode(t *testing.T) {
	f := newAPIFixture(t)

	resp, body := f.do(t, http.MethodGet, "/api/geocode?address=Brooklyn", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 40.6782, body["lat"])
}
