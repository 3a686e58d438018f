package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

const userLocationsTable = "user_locations"

// UserLocationAdapter implements UserLocationRepository on PostgreSQL
type UserLocationAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewUserLocationAdapter creates a new user location adapter
func NewUserLocationAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.UserLocationRepository {
	return &UserLocationAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// GetByUserID returns the user's location or nil
func (a *UserLocationAdapter) GetByUserID(ctx context.Context, userID string) (*entities.UserLocation, error) {
	defer a.observe(ctx, "user_locations.get", time.Now())

	query, args, err := a.db.Select("id", "user_id", "latitude", "longitude", "address", "last_updated").
		From(userLocationsTable).
		Where(goqu.Ex{"user_id": userID}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	loc := &entities.UserLocation{}
	var address sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&loc.ID,
		&loc.UserID,
		&loc.Latitude,
		&loc.Longitude,
		&address,
		&loc.LastUpdated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user location", err)
	}

	if address.Valid {
		loc.Address = &address.String
	}
	return loc, nil
}

// Upsert writes the location in one statement keyed on user_id, so two
// concurrent saves for the same user converge on a single row.
func (a *UserLocationAdapter) Upsert(ctx context.Context, location *entities.UserLocation) (string, error) {
	defer a.observe(ctx, "user_locations.upsert", time.Now())

	id := location.ID
	if id == "" {
		id = uuid.NewString()
	}
	var address sql.NullString
	if location.Address != nil {
		address = sql.NullString{String: *location.Address, Valid: true}
	}

	query, args, err := a.db.Insert(userLocationsTable).
		Prepared(true).
		Rows(goqu.Record{
			"id":           id,
			"user_id":      location.UserID,
			"latitude":     location.Latitude,
			"longitude":    location.Longitude,
			"address":      address,
			"last_updated": location.LastUpdated,
		}).
		OnConflict(goqu.DoUpdate("user_id", goqu.Record{
			"latitude":     goqu.L("EXCLUDED.latitude"),
			"longitude":    goqu.L("EXCLUDED.longitude"),
			"address":      goqu.L("EXCLUDED.address"),
			"last_updated": goqu.L("EXCLUDED.last_updated"),
		})).
		Returning("id").
		ToSQL()
	if err != nil {
		return "", apperrors.NewInternalError("failed to build upsert query", err)
	}

	var storedID string
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&storedID); err != nil {
		return "", apperrors.NewInternalError("failed to save user location", err)
	}
	return storedID, nil
}

func (a *UserLocationAdapter) observe(ctx context.Context, operation string, start time.Time) {
	observability.RecordDBMetric(ctx, a.metrics, operation, time.Since(start))
}
