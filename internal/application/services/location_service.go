package services

import (
	"context"
	"strings"
	"time"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/providers"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
	"github.com/zatekoja/hospitallocator/pkg/geo"
)

// LocationService stores the last position of authenticated users
type LocationService struct {
	repo     repositories.UserLocationRepository
	identity providers.IdentityProvider
}

// NewLocationService creates a new location service
func NewLocationService(repo repositories.UserLocationRepository, identity providers.IdentityProvider) *LocationService {
	return &LocationService{
		repo:     repo,
		identity: identity,
	}
}

// SaveUserLocation creates or overwrites the caller's location and returns its ID
func (s *LocationService) SaveUserLocation(ctx context.Context, latitude, longitude float64, address *string) (string, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return "", apperrors.NewAuthorizationRequiredError()
	}
	if err := geo.ValidateCoordinates(latitude, longitude); err != nil {
		return "", apperrors.NewValidationError(err.Error())
	}

	if address != nil {
		trimmed := strings.TrimSpace(*address)
		if trimmed == "" {
			address = nil
		} else {
			address = &trimmed
		}
	}

	return s.repo.Upsert(ctx, &entities.UserLocation{
		UserID:      userID,
		Latitude:    latitude,
		Longitude:   longitude,
		Address:     address,
		LastUpdated: time.Now().UTC(),
	})
}

// GetUserLocation returns the caller's location, or nil when the caller is
// anonymous or has none
func (s *LocationService) GetUserLocation(ctx context.Context) (*entities.UserLocation, error) {
	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, nil
	}
	return s.repo.GetByUserID(ctx, userID)
}
