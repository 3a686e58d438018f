package repositories

import (
	"context"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
)

// HospitalRepository defines the interface for hospital storage operations
type HospitalRepository interface {
	// Create inserts a new hospital
	Create(ctx context.Context, hospital *entities.Hospital) error

	// GetByID retrieves a hospital by ID; a missing record is a NOT_FOUND AppError
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// List returns every hospital in insertion order
	List(ctx context.Context) ([]*entities.Hospital, error)

	// Count returns the number of stored hospitals
	Count(ctx context.Context) (int, error)

	// SearchByName matches term against hospital names, applying the equality filters
	SearchByName(ctx context.Context, term string, filter HospitalFilter) ([]*entities.Hospital, error)
}

// HospitalSearchRepository defines the interface for the hospital search index (e.g. Typesense)
type HospitalSearchRepository interface {
	// SearchByName returns hospitals whose name matches term, in relevance order
	SearchByName(ctx context.Context, term string, filter HospitalFilter) ([]*entities.Hospital, error)

	// Index adds or replaces a hospital document
	Index(ctx context.Context, hospital *entities.Hospital) error

	// Delete removes a hospital from the index
	Delete(ctx context.Context, id string) error
}

// HospitalFilter holds the equality constraints shared by both query paths
type HospitalFilter struct {
	Type          string
	EmergencyOnly bool
}

// Matches reports whether hospital satisfies the filter.
func (f HospitalFilter) Matches(hospital *entities.Hospital) bool {
	if hospital == nil {
		return false
	}
	if f.Type != "" && hospital.Type != f.Type {
		return false
	}
	if f.EmergencyOnly && !hospital.IsEmergency {
		return false
	}
	return true
}
