package repositories

import (
	"context"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
)

// UserLocationRepository stores the single saved location of each user
type UserLocationRepository interface {
	// GetByUserID returns the user's location, or nil when none was saved
	GetByUserID(ctx context.Context, userID string) (*entities.UserLocation, error)

	// Upsert inserts the location or overwrites the existing record for the
	// same user atomically, returning the record ID
	Upsert(ctx context.Context, location *entities.UserLocation) (string, error)
}
