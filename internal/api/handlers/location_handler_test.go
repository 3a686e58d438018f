package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/hospitallocator/internal/api/handlers"
	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) SaveUserLocation(ctx context.Context, latitude, longitude float64, address *string) (string, error) {
	args := m.Called(ctx, latitude, longitude, address)
	return args.String(0), args.Error(1)
}

func (m *MockLocationService) GetUserLocation(ctx context.Context) (*entities.UserLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserLocation), args.Error(1)
}

func TestLocationHandler_SaveLocation(t *testing.T) {
	svc := new(MockLocationService)
	handler := handlers.NewLocationHandler(svc)
	svc.On("SaveUserLocation", mock.Anything, 40.7, -74.0, mock.MatchedBy(func(a *string) bool {
		return a != nil && *a == "Times Square"
	})).Return("loc-1", nil)

	body := `{"latitude":40.7,"longitude":-74.0,"address":"Times Square"}`
	w := httptest.NewRecorder()
	handler.SaveLocation(w, httptest.NewRequest(http.MethodPut, "/api/me/location", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"loc-1"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestLocationHandler_SaveLocation_Unauthenticated(t *testing.T) {
	svc := new(MockLocationService)
	handler := handlers.NewLocationHandler(svc)
	svc.On("SaveUserLocation", mock.Anything, 1.0, 2.0, (*string)(nil)).
		Return("", apperrors.NewAuthorizationRequiredError())

	w := httptest.NewRecorder()
	handler.SaveLocation(w, httptest.NewRequest(http.MethodPut, "/api/me/location", strings.NewReader(`{"latitude":1,"longitude":2}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestLocationHandler_SaveLocation_MissingCoordinates(t *testing.T) {
	svc := new(MockLocationService)
	handler := handlers.NewLocationHandler(svc)

	w := httptest.NewRecorder()
	handler.SaveLocation(w, httptest.NewRequest(http.MethodPut, "/api/me/location", strings.NewReader(`{"latitude":1}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "SaveUserLocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLocationHandler_GetLocation(t *testing.T) {
	svc := new(MockLocationService)
	handler := handlers.NewLocationHandler(svc)
	svc.On("GetUserLocation", mock.Anything).Return(&entities.UserLocation{ID: "loc-1", UserID: "u1", Latitude: 1, Longitude: 2}, nil).Once()
	svc.On("GetUserLocation", mock.Anything).Return(nil, nil).Once()

	w := httptest.NewRecorder()
	handler.GetLocation(w, httptest.NewRequest(http.MethodGet, "/api/me/location", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)

	w = httptest.NewRecorder()
	handler.GetLocation(w, httptest.NewRequest(http.MethodGet, "/api/me/location", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}
