package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitallocator/internal/adapters/database"
	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

var hospitalRowColumns = []string{
	"id", "name", "address", "phone", "email", "website",
	"latitude", "longitude", "type", "services", "rating",
	"is_emergency", "operating_hours", "created_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func hospitalRow(rows *sqlmock.Rows, id, name string, rating interface{}) *sqlmock.Rows {
	return rows.AddRow(
		id, name, "123 Main St, Downtown", "+1-555-0101", "info@example.com", "",
		40.7128, -74.0060, "general", "{Emergency,Surgery}", rating,
		true, `{"monday":"24/7","sunday":"Closed"}`, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	)
}

func TestHospitalAdapter_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewHospitalAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectQuery(`SELECT .* FROM "hospitals" WHERE \("id" = \$1\)`).
		WithArgs("h1").
		WillReturnRows(hospitalRow(sqlmock.NewRows(hospitalRowColumns), "h1", "City General Hospital", 4.2))

	h, err := adapter.GetByID(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "City General Hospital", h.Name)
	assert.Equal(t, []string{"Emergency", "Surgery"}, h.Services)
	require.NotNil(t, h.Rating)
	assert.Equal(t, 4.2, *h.Rating)
	assert.Equal(t, "24/7", h.OperatingHours.Monday)
	assert.Equal(t, "Closed", h.OperatingHours.Sunday)
	assert.True(t, h.IsEmergency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapter_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewHospitalAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectQuery(`SELECT .* FROM "hospitals"`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(hospitalRowColumns))

	_, err := adapter.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapter_ListKeepsInsertionOrder(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewHospitalAdapter(postgres.NewClientFromDB(db), nil)

	rows := sqlmock.NewRows(hospitalRowColumns)
	hospitalRow(rows, "h1", "First", nil)
	hospitalRow(rows, "h2", "Second", 3.5)
	mock.ExpectQuery(`SELECT .* FROM "hospitals" ORDER BY "seq" ASC`).WillReturnRows(rows)

	list, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "h1", list[0].ID)
	assert.Nil(t, list[0].Rating)
	assert.Equal(t, "h2", list[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapter_ListWrapsDriverErrors(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewHospitalAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectQuery(`SELECT .* FROM "hospitals"`).WillReturnError(errors.New("connection reset"))

	_, err := adapter.List(context.Background())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestHospitalAdapter_Count(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewHospitalAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "hospitals"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := adapter.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapter_SearchByNameAppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewHospitalAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectQuery(`SELECT .* FROM "hospitals" WHERE .*"name" ILIKE \$1.*"type" = \$2.*"is_emergency" IS TRUE.*ORDER BY "seq" ASC`).
		WithArgs(`%50\%%`, "general").
		WillReturnRows(sqlmock.NewRows(hospitalRowColumns))

	got, err := adapter.SearchByName(context.Background(), " 50% ", repositories.HospitalFilter{Type: "general", EmergencyOnly: true})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHospitalAdapter_Create(t *testing.T) {
	db, mock := newMockDB(t)
	adapter := database.NewHospitalAdapter(postgres.NewClientFromDB(db), nil)

	mock.ExpectExec(`INSERT INTO "hospitals"`).WillReturnResult(sqlmock.NewResult(0, 1))

	rating := 4.8
	err := adapter.Create(context.Background(), &entities.Hospital{
		ID:             "h1",
		Name:           "Heart Specialty Center",
		Type:           "specialty",
		Rating:         &rating,
		OperatingHours: entities.AllDay("24/7"),
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
