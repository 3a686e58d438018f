package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitallocator/internal/adapters/memory"
	"github.com/zatekoja/hospitallocator/internal/application/services"
	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/domain/providers"
)

func TestCacheWarmingService_WarmCache(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHospitalRepository()
	for i, h := range services.SampleHospitals() {
		h.ID = []string{"a", "b", "c", "d", "e"}[i]
		require.NoError(t, repo.Create(ctx, h))
	}
	cache := NewMockCacheProvider()

	count, err := services.NewCacheWarmingService(repo, cache).WarmCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	raw, err := cache.Get(ctx, providers.CacheKeyHospitalList)
	require.NoError(t, err)
	var list []*entities.Hospital
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 5)
	assert.Equal(t, "City General Hospital", list[0].Name)

	raw, err = cache.Get(ctx, providers.HospitalCacheKey("d"))
	require.NoError(t, err)
	var single entities.Hospital
	require.NoError(t, json.Unmarshal(raw, &single))
	assert.Equal(t, "Heart Specialty Center", single.Name)
}

func TestCacheWarmingService_EmptyCollectionCachesEmptyList(t *testing.T) {
	ctx := context.Background()
	cache := NewMockCacheProvider()

	count, err := services.NewCacheWarmingService(memory.NewHospitalRepository(), cache).WarmCache(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	raw, err := cache.Get(ctx, providers.CacheKeyHospitalList)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}
