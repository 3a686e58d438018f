package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/repositories"
	apperrors "github.com/zatekoja/hospitallocator/pkg/errors"
)

func seedRepo(t *testing.T) *HospitalRepository {
	t.Helper()
	repo := NewHospitalRepository()
	for _, h := range []*entities.Hospital{
		{ID: "h1", Name: "City General Hospital", Type: entities.HospitalTypeGeneral, IsEmergency: true},
		{ID: "h2", Name: "Downtown Medical Clinic", Type: entities.HospitalTypeClinic},
		{ID: "h3", Name: "St. Mary's Hospital", Type: entities.HospitalTypeGeneral},
	} {
		require.NoError(t, repo.Create(context.Background(), h))
	}
	return repo
}

func TestHospitalRepository_ListPreservesInsertionOrder(t *testing.T) {
	repo := seedRepo(t)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "h1", list[0].ID)
	assert.Equal(t, "h2", list[1].ID)
	assert.Equal(t, "h3", list[2].ID)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestHospitalRepository_CreateRejectsDuplicates(t *testing.T) {
	repo := seedRepo(t)

	err := repo.Create(context.Background(), &entities.Hospital{ID: "h1", Name: "Again"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestHospitalRepository_GetByIDReturnsCopy(t *testing.T) {
	repo := seedRepo(t)

	h, err := repo.GetByID(context.Background(), "h1")
	require.NoError(t, err)
	h.Name = "mutated"

	again, err := repo.GetByID(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "City General Hospital", again.Name)

	_, err = repo.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestHospitalRepository_SearchByName(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	got, err := repo.SearchByName(ctx, "HOSPITAL", repositories.HospitalFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "h1", got[0].ID)
	assert.Equal(t, "h3", got[1].ID)

	got, err = repo.SearchByName(ctx, "hospital", repositories.HospitalFilter{EmergencyOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "h1", got[0].ID)

	got, err = repo.SearchByName(ctx, "clinic", repositories.HospitalFilter{Type: entities.HospitalTypeGeneral})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHospitalRepository_Delete(t *testing.T) {
	repo := seedRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, "h2"))
	require.NoError(t, repo.Delete(ctx, "h2"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "h3", list[1].ID)
}
