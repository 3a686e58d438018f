package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics_NoopProvider(t *testing.T) {
	metrics, err := InitMetrics()
	require.NoError(t, err)
	require.NotNil(t, metrics)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, metrics, "GET", "/health", 200, time.Millisecond)
		RecordDBMetric(ctx, metrics, "hospitals.list", time.Millisecond)
		RecordCacheHit(ctx, metrics, "hospital")
		RecordCacheMiss(ctx, metrics, "hospital")
		RecordQueryResults(ctx, metrics, "nearby", 3)
		RecordSearchFallback(ctx, metrics)
	})
}

func TestRecorders_NilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, nil, "GET", "/health", 200, time.Millisecond)
		RecordQueryResults(ctx, nil, "search", 1)
		RecordSearchFallback(ctx, nil)
	})
}

func TestLoggerFromContext_WithoutSpan(t *testing.T) {
	InitLogger("hospital-locator-test", "test", "debug")
	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)
}
