package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/providers"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
	"github.com/zatekoja/hospitallocator/pkg/geo"
)

// DefaultRadiusKm is used by nearby queries that carry no radius
const DefaultRadiusKm = 10.0

// Seed results
const (
	SeedMessageAlreadySeeded = "Hospitals already seeded"
	seedMessageFormat        = "Seeded %d hospitals"
)

// NearbyParams holds the inputs of a radius query
type NearbyParams struct {
	Latitude      float64
	Longitude     float64
	RadiusKm      *float64
	Type          string
	EmergencyOnly bool
}

// SearchParams holds the inputs of a text search
type SearchParams struct {
	Term          string
	Latitude      *float64
	Longitude     *float64
	Type          string
	EmergencyOnly bool
}

// HospitalService handles business logic for hospitals
type HospitalService struct {
	repo          repositories.HospitalRepository
	searchRepo    repositories.HospitalSearchRepository
	identity      providers.IdentityProvider
	eventBus      providers.EventBus
	metrics       *observability.Metrics
	defaultRadius float64
}

// NewHospitalService creates a new hospital service. searchRepo may be nil,
// in which case searches go to the database repository.
func NewHospitalService(repo repositories.HospitalRepository, searchRepo repositories.HospitalSearchRepository, identity providers.IdentityProvider) *HospitalService {
	return &HospitalService{
		repo:          repo,
		searchRepo:    searchRepo,
		identity:      identity,
		defaultRadius: DefaultRadiusKm,
	}
}

// SetEventBus enables change notifications
func (s *HospitalService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetMetrics enables query metrics
func (s *HospitalService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// SetDefaultRadius overrides the radius used when a nearby query has none
func (s *HospitalService) SetDefaultRadius(km float64) {
	if km > 0 {
		s.defaultRadius = km
	}
}

// GetNearbyHospitals returns hospitals within the radius of the reference
// point, nearest first. The whole collection is scanned.
func (s *HospitalService) GetNearbyHospitals(ctx context.Context, params NearbyParams) ([]*entities.HospitalWithDistance, error) {
	ctx, span := observability.StartSpan(ctx, "HospitalService.GetNearbyHospitals")
	defer span.End()

	if err := geo.ValidateCoordinates(params.Latitude, params.Longitude); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	radius := s.defaultRadius
	if params.RadiusKm != nil {
		radius = *params.RadiusKm
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	filter := repositories.HospitalFilter{Type: params.Type, EmergencyOnly: params.EmergencyOnly}
	results := make([]*entities.HospitalWithDistance, 0)
	for _, h := range all {
		if !filter.Matches(h) {
			continue
		}
		d := geo.Distance(params.Latitude, params.Longitude, h.Latitude, h.Longitude)
		if d > radius {
			continue
		}
		results = append(results, withDistance(h, d))
	}
	sortByDistance(results)

	observability.RecordQueryResults(ctx, s.metrics, "nearby", len(results))
	return results, nil
}

// SearchHospitals matches term against hospital names. When both reference
// coordinates are present the results are re-sorted by distance, otherwise
// the index order is kept.
func (s *HospitalService) SearchHospitals(ctx context.Context, params SearchParams) ([]*entities.HospitalWithDistance, error) {
	ctx, span := observability.StartSpan(ctx, "HospitalService.SearchHospitals")
	defer span.End()

	term := strings.TrimSpace(params.Term)
	if term == "" {
		return nil, apperrors.NewValidationError("search term is required")
	}
	hasOrigin := params.Latitude != nil && params.Longitude != nil
	if hasOrigin {
		if err := geo.ValidateCoordinates(*params.Latitude, *params.Longitude); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	filter := repositories.HospitalFilter{Type: params.Type, EmergencyOnly: params.EmergencyOnly}
	matches, err := s.searchByName(ctx, term, filter)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	results := make([]*entities.HospitalWithDistance, 0, len(matches))
	for _, h := range matches {
		if !hasOrigin {
			results = append(results, &entities.HospitalWithDistance{Hospital: *h})
			continue
		}
		results = append(results, withDistance(h, geo.Distance(*params.Latitude, *params.Longitude, h.Latitude, h.Longitude)))
	}
	if hasOrigin {
		sortByDistance(results)
	}

	observability.RecordQueryResults(ctx, s.metrics, "search", len(results))
	return results, nil
}

func (s *HospitalService) searchByName(ctx context.Context, term string, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	if s.searchRepo == nil {
		return s.repo.SearchByName(ctx, term, filter)
	}

	matches, err := s.searchRepo.SearchByName(ctx, term, filter)
	if err == nil {
		return matches, nil
	}

	observability.LoggerFromContext(ctx).Warn().Err(err).Str("term", term).Msg("search index failed, falling back to database")
	observability.RecordSearchFallback(ctx, s.metrics)
	return s.repo.SearchByName(ctx, term, filter)
}

// GetHospitalByID returns the hospital or nil when it does not exist
func (s *HospitalService) GetHospitalByID(ctx context.Context, id string) (*entities.Hospital, error) {
	hospital, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return hospital, nil
}

// CreateHospital validates and stores a new hospital, then indexes it
func (s *HospitalService) CreateHospital(ctx context.Context, hospital *entities.Hospital) (*entities.Hospital, error) {
	if _, ok := s.identity.CurrentUserID(ctx); !ok {
		return nil, apperrors.NewAuthorizationRequiredError()
	}
	if hospital == nil {
		return nil, apperrors.NewValidationError("hospital is required")
	}

	hospital.Name = strings.TrimSpace(hospital.Name)
	if hospital.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if strings.TrimSpace(hospital.Type) == "" {
		return nil, apperrors.NewValidationError("type is required")
	}
	if err := geo.ValidateCoordinates(hospital.Latitude, hospital.Longitude); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if hospital.Rating != nil && (*hospital.Rating < 0 || *hospital.Rating > 5) {
		return nil, apperrors.NewValidationError("rating must be between 0 and 5")
	}

	hospital.ID = uuid.NewString()
	hospital.CreatedAt = time.Now().UTC()
	if hospital.Services == nil {
		hospital.Services = []string{}
	}

	if err := s.insert(ctx, hospital); err != nil {
		return nil, err
	}
	s.publish(ctx, entities.NewHospitalEvent(entities.HospitalEventTypeCreated, hospital))
	return hospital, nil
}

// SeedHospitals inserts the sample hospitals into an empty collection
func (s *HospitalService) SeedHospitals(ctx context.Context) (string, error) {
	if _, ok := s.identity.CurrentUserID(ctx); !ok {
		return "", apperrors.NewAuthorizationRequiredError()
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return SeedMessageAlreadySeeded, nil
	}

	samples := SampleHospitals()
	now := time.Now().UTC()
	for _, h := range samples {
		h.ID = uuid.NewString()
		h.CreatedAt = now
		if err := s.insert(ctx, h); err != nil {
			return "", err
		}
	}

	s.publish(ctx, entities.NewHospitalEvent(entities.HospitalEventTypeSeeded, nil))
	observability.LoggerFromContext(ctx).Info().Int("count", len(samples)).Msg("seeded hospitals")
	return fmt.Sprintf(seedMessageFormat, len(samples)), nil
}

// ListTypes returns the hospital type labels offered as filters
func (s *HospitalService) ListTypes() []string {
	return entities.KnownHospitalTypes()
}

func (s *HospitalService) insert(ctx context.Context, hospital *entities.Hospital) error {
	if err := s.repo.Create(ctx, hospital); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, hospital); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("hospital_id", hospital.ID).Msg("failed to index hospital")
		}
	}
	return nil
}

func (s *HospitalService) publish(ctx context.Context, event *entities.HospitalEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelHospitalUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("event_type", string(event.EventType)).Msg("failed to publish hospital event")
	}
}
