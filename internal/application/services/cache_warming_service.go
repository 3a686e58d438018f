package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/domain/providers"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
)

// CacheWarmingService preloads the hospital list and record cache entries
type CacheWarmingService struct {
	repo  repositories.HospitalRepository
	cache providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service. repo must be
// the uncached source repository.
func NewCacheWarmingService(repo repositories.HospitalRepository, cache providers.CacheProvider) *CacheWarmingService {
	return &CacheWarmingService{
		repo:  repo,
		cache: cache,
	}
}

// WarmCache writes the full hospital list and every single-hospital entry.
// It returns the number of hospitals cached.
func (s *CacheWarmingService) WarmCache(ctx context.Context) (int, error) {
	hospitals, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch hospitals: %w", err)
	}

	data, err := json.Marshal(hospitals)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal hospitals: %w", err)
	}
	if err := s.cache.Set(ctx, providers.CacheKeyHospitalList, data, providers.CacheTTLHospitalList); err != nil {
		return 0, fmt.Errorf("failed to cache hospitals list: %w", err)
	}

	for _, h := range hospitals {
		item, err := json.Marshal(h)
		if err != nil {
			log.Warn().Err(err).Str("hospital_id", h.ID).Msg("failed to marshal hospital")
			continue
		}
		if err := s.cache.Set(ctx, providers.HospitalCacheKey(h.ID), item, providers.CacheTTLHospital); err != nil {
			log.Warn().Err(err).Str("hospital_id", h.ID).Msg("failed to cache hospital")
		}
	}

	return len(hospitals), nil
}

// StartPeriodicWarming warms once, then again every interval until ctx is done
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	s.warm(ctx)

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stopping cache warming service")
				return
			case <-ticker.C:
				s.warm(ctx)
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("started periodic cache warming")
}

func (s *CacheWarmingService) warm(ctx context.Context) {
	count, err := s.WarmCache(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cache warming failed")
		return
	}
	log.Debug().Int("hospitals", count).Msg("cache warmed")
}
