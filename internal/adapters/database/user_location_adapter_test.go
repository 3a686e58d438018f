package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitallocator/internal/adapters/database"
	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

func TestUserLocationAdapter_UpsertIsSingleStatement(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewUserLocationAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectQuery(`INSERT INTO "user_locations" .+ ON CONFLICT \(user_id\) DO UPDATE SET .+ RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("existing-id"))

	addr := "Times Square"
	id, err := adapter.Upsert(context.Background(), &entities.UserLocation{
		UserID:      "user-1",
		Latitude:    40.758,
		Longitude:   -73.9855,
		Address:     &addr,
		LastUpdated: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "existing-id", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserLocationAdapter_UpsertError(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewUserLocationAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectQuery(`INSERT INTO "user_locations"`).WillReturnError(errors.New("deadlock detected"))

	_, err := adapter.Upsert(context.Background(), &entities.UserLocation{UserID: "user-1"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestUserLocationAdapter_GetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewUserLocationAdapter(postgres.NewClientFromDB(db), nil)
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "user_locations" WHERE \("user_id" = \$1\)`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "latitude", "longitude", "address", "last_updated"}).
			AddRow("loc-1", "user-1", 40.7, -74.0, nil, updated))

	loc, err := adapter.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, "loc-1", loc.ID)
	assert.Nil(t, loc.Address)
	assert.Equal(t, updated, loc.LastUpdated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserLocationAdapter_GetByUserIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewUserLocationAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectQuery(`SELECT .* FROM "user_locations"`).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "latitude", "longitude", "address", "last_updated"}))

	loc, err := adapter.GetByUserID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, loc)
}
