package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_TypesenseConfig(t *testing.T) {
	t.Setenv("TYPESENSE_URL", "http://test-typesense:8108")
	t.Setenv("TYPESENSE_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://test-typesense:8108", cfg.Typesense.URL)
	assert.Equal(t, "test-key", cfg.Typesense.APIKey)
	assert.True(t, cfg.Typesense.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TYPESENSE_URL", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DEFAULT_RADIUS_KM", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, 10.0, cfg.Search.DefaultRadiusKm)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "hospital-locator", cfg.OTEL.ServiceName)
}

func TestLoad_ParsesTypedValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("DEFAULT_RADIUS_KM", "25.5")
	t.Setenv("AUTH_TOKEN_TTL", "90m")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 25.5, cfg.Search.DefaultRadiusKm)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_RejectsUnknownStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveRadius(t *testing.T) {
	t.Setenv("DEFAULT_RADIUS_KM", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "hospitals", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=hospitals sslmode=disable", cfg.DatabaseDSN())
}
