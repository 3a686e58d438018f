//go:build integration

package integration

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zatekoja/hospitallocator/internal/domain/entities"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hospitallocator/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/hospitallocator/pkg/config"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func requireEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if os.Getenv(key) == "" {
			t.Skipf("Skipping integration test: %s not set", key)
		}
	}
}

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	cfg := &config.RedisConfig{
		Host:     getEnv("TEST_REDIS_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_REDIS_PORT", 6379),
		Password: getEnv("TEST_REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("TEST_REDIS_DB", 0),
	}

	client, err := redis.NewClient(cfg)
	require.NoError(t, err, "Failed to create redis client")
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// newTestPostgresClient connects, applies the schema and empties both tables.
func newTestPostgresClient(t *testing.T) *postgres.Client {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "hospital_locator_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	client, err := postgres.NewClient(cfg)
	require.NoError(t, err, "Failed to create postgres client")
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.EnsureSchema(ctx))
	_, err = client.DB().ExecContext(ctx, `TRUNCATE TABLE hospitals, user_locations RESTART IDENTITY`)
	require.NoError(t, err)
	return client
}

func newTestTypesenseClient(t *testing.T) *typesense.Client {
	t.Helper()

	client, err := typesense.NewClient(&config.TypesenseConfig{
		URL:    getEnv("TEST_TYPESENSE_URL", "http://localhost:8108"),
		APIKey: getEnv("TEST_TYPESENSE_API_KEY", "xyz"),
	})
	require.NoError(t, err, "Failed to create typesense client")
	require.NoError(t, client.ResetSchema(context.Background()))
	return client
}

func testHospital(id, name, hospitalType string, lat, lon float64, emergency bool) *entities.Hospital {
	rating := 4.2
	return &entities.Hospital{
		ID:             id,
		Name:           name,
		Address:        "1 Test Street",
		Latitude:       lat,
		Longitude:      lon,
		Type:           hospitalType,
		Services:       []string{"Emergency Care"},
		Rating:         &rating,
		IsEmergency:    emergency,
		OperatingHours: entities.AllDay("24/7"),
		CreatedAt:      time.Now().UTC().Truncate(time.Millisecond),
	}
}
