package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/providers"
)

// CacheInvalidationService drops cached hospital reads when the collection changes
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	started  bool
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for hospital events
func (s *CacheInvalidationService) Start() error {
	if s.started {
		return nil
	}
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelHospitalUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to hospital updates: %w", err)
	}

	s.started = true
	go s.processEvents(eventChan)
	log.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the listener and waits for it to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	if s.started {
		<-s.done
	}
	log.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.HospitalEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.HospitalEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.InvalidateHospital(ctx, event.HospitalID); err != nil {
		log.Warn().Err(err).
			Str("event_id", event.ID).
			Str("event_type", string(event.EventType)).
			Msg("failed to invalidate hospital cache")
		return
	}
	log.Debug().
		Str("event_id", event.ID).
		Str("hospital_id", event.HospitalID).
		Msg("invalidated hospital cache")
}

// InvalidateHospital drops the cached list and, when id is set, the cached record
func (s *CacheInvalidationService) InvalidateHospital(ctx context.Context, id string) error {
	keys := []string{providers.CacheKeyHospitalList}
	if id != "" {
		keys = append(keys, providers.HospitalCacheKey(id))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete cache keys %v: %w", keys, err)
	}
	return nil
}
