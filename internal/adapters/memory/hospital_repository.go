package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

// HospitalRepository keeps hospitals in process memory. It satisfies both
// repositories.HospitalRepository and repositories.HospitalSearchRepository
// so a single instance can back the API when no database is configured.
type HospitalRepository struct {
	mu    sync.RWMutex
	items map[string]*entities.Hospital
	order []string
}

// NewHospitalRepository creates an empty repository
func NewHospitalRepository() *HospitalRepository {
	return &HospitalRepository{
		items: make(map[string]*entities.Hospital),
	}
}

// Create stores a copy of hospital
func (r *HospitalRepository) Create(ctx context.Context, hospital *entities.Hospital) error {
	if hospital == nil || hospital.ID == "" {
		return apperrors.NewValidationError("hospital id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[hospital.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("hospital %s already exists", hospital.ID))
	}
	r.items[hospital.ID] = cloneHospital(hospital)
	r.order = append(r.order, hospital.ID)
	return nil
}

// GetByID returns a copy of the stored hospital
func (r *HospitalRepository) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %s not found", id))
	}
	return cloneHospital(h), nil
}

// List returns all hospitals in insertion order
func (r *HospitalRepository) List(ctx context.Context) ([]*entities.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Hospital, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneHospital(r.items[id]))
	}
	return out, nil
}

// Count returns the number of stored hospitals
func (r *HospitalRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// SearchByName does a case-insensitive substring match on the name
func (r *HospitalRepository) SearchByName(ctx context.Context, term string, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	needle := strings.ToLower(strings.TrimSpace(term))

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Hospital, 0)
	for _, id := range r.order {
		h := r.items[id]
		if !strings.Contains(strings.ToLower(h.Name), needle) {
			continue
		}
		if !filter.Matches(h) {
			continue
		}
		out = append(out, cloneHospital(h))
	}
	return out, nil
}

// Index is a no-op: SearchByName scans the stored records directly
func (r *HospitalRepository) Index(ctx context.Context, hospital *entities.Hospital) error {
	return nil
}

// Delete removes a hospital
func (r *HospitalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneHospital(h *entities.Hospital) *entities.Hospital {
	c := *h
	if h.Services != nil {
		c.Services = append([]string(nil), h.Services...)
	}
	if h.Rating != nil {
		rating := *h.Rating
		c.Rating = &rating
	}
	return &c
}
