package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/providers"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
)

// CachedHospitalAdapter wraps a HospitalRepository with read-through caching
type CachedHospitalAdapter struct {
	adapter repositories.HospitalRepository
	cache   providers.CacheProvider
	metrics *observability.Metrics
}

// NewCachedHospitalAdapter creates a new cached hospital adapter
func NewCachedHospitalAdapter(adapter repositories.HospitalRepository, cache providers.CacheProvider, metrics *observability.Metrics) repositories.HospitalRepository {
	return &CachedHospitalAdapter{
		adapter: adapter,
		cache:   cache,
		metrics: metrics,
	}
}

// GetByID retrieves a hospital by ID with caching
func (a *CachedHospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	cacheKey := providers.HospitalCacheKey(id)

	var hospital entities.Hospital
	if a.load(ctx, cacheKey, "hospital", &hospital) {
		return &hospital, nil
	}

	fetched, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.store(ctx, cacheKey, fetched, providers.CacheTTLHospital)
	return fetched, nil
}

// List retrieves all hospitals with caching
func (a *CachedHospitalAdapter) List(ctx context.Context) ([]*entities.Hospital, error) {
	var hospitals []*entities.Hospital
	if a.load(ctx, providers.CacheKeyHospitalList, "hospitals", &hospitals) {
		return hospitals, nil
	}

	fetched, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}
	a.store(ctx, providers.CacheKeyHospitalList, fetched, providers.CacheTTLHospitalList)
	return fetched, nil
}

// Create creates a hospital and drops the cached list
func (a *CachedHospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.adapter.Create(ctx, hospital); err != nil {
		return err
	}
	if err := a.cache.Delete(ctx, providers.CacheKeyHospitalList); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate hospitals list cache")
	}
	return nil
}

// Count is not cached
func (a *CachedHospitalAdapter) Count(ctx context.Context) (int, error) {
	return a.adapter.Count(ctx)
}

// SearchByName is not cached
func (a *CachedHospitalAdapter) SearchByName(ctx context.Context, term string, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	return a.adapter.SearchByName(ctx, term, filter)
}

func (a *CachedHospitalAdapter) load(ctx context.Context, key, prefix string, dest interface{}) bool {
	cached, err := a.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		observability.RecordCacheMiss(ctx, a.metrics, prefix)
		return false
	}
	if err := json.Unmarshal(cached, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to decode cached value")
		observability.RecordCacheMiss(ctx, a.metrics, prefix)
		return false
	}
	observability.RecordCacheHit(ctx, a.metrics, prefix)
	return true
}

func (a *CachedHospitalAdapter) store(ctx context.Context, key string, value interface{}, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to encode cache value")
		return
	}
	if err := a.cache.Set(ctx, key, data, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to write cache")
	}
}
