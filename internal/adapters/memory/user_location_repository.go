package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
)

// UserLocationRepository keeps one location per user in process memory
type UserLocationRepository struct {
	mu     sync.Mutex
	byUser map[string]*entities.UserLocation
}

// NewUserLocationRepository creates an empty repository
func NewUserLocationRepository() *UserLocationRepository {
	return &UserLocationRepository{
		byUser: make(map[string]*entities.UserLocation),
	}
}

// GetByUserID returns the saved location or nil
func (r *UserLocationRepository) GetByUserID(ctx context.Context, userID string) (*entities.UserLocation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loc, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	return cloneLocation(loc), nil
}

// Upsert looks up and writes under the same lock so concurrent saves for
// one user never produce two records.
func (r *UserLocationRepository) Upsert(ctx context.Context, location *entities.UserLocation) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byUser[location.UserID]; ok {
		existing.Latitude = location.Latitude
		existing.Longitude = location.Longitude
		existing.Address = copyString(location.Address)
		existing.LastUpdated = location.LastUpdated
		return existing.ID, nil
	}

	stored := cloneLocation(location)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.byUser[stored.UserID] = stored
	return stored.ID, nil
}

func cloneLocation(l *entities.UserLocation) *entities.UserLocation {
	c := *l
	c.Address = copyString(l.Address)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
