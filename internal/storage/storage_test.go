package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/platform/pkg/config"
	"github.com/stockpulse/platform/pkg/database"
	"github.com/stockpulse/platform/pkg/logger"
)

func integrationStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	db, err := database.New(context.Background(), config.DatabaseConfig{
		URL:             os.Getenv("DATABASE_URL"),
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	s := New(db.Pool, logger.Nop())
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestStockRoundTrip(t *testing.T) {
	s := integrationStore(t)
	ctx := context.Background()

	doc := map[string]interface{}{
		"symbol": "STORETEST",
		"price_data": map[string]interface{}{
			"close": 2940.5,
		},
	}
	require.NoError(t, s.SaveStock(ctx, "STORETEST", doc))

	got, err := s.GetStock(ctx, "STORETEST")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "STORETEST", got["symbol"])

	// Upsert replaces the document.
	doc["price_data"] = map[string]interface{}{"close": 3000.0}
	require.NoError(t, s.SaveStock(ctx, "STORETEST", doc))

	got, err = s.GetStock(ctx, "STORETEST")
	require.NoError(t, err)
	price := got["price_data"].(map[string]interface{})
	assert.InDelta(t, 3000.0, price["close"].(float64), 0.001)
}

func TestGetStockAbsent(t *testing.T) {
	s := integrationStore(t)

	got, err := s.GetStock(context.Background(), "NOSUCHSYMBOL")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQualityReportLatest(t *testing.T) {
	s := integrationStore(t)
	ctx := context.Background()

	older := time.Now().UTC().Add(-time.Hour)
	newer := time.Now().UTC()
	require.NoError(t, s.SaveQualityReport(ctx, "QRTEST", older,
		map[string]interface{}{"overall_score": 60.0}))
	require.NoError(t, s.SaveQualityReport(ctx, "QRTEST", newer,
		map[string]interface{}{"overall_score": 75.0}))

	got, err := s.LatestQualityReport(ctx, "QRTEST")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 75.0, got["overall_score"].(float64), 0.001)
}

func TestSaveJobUpsert(t *testing.T) {
	s := integrationStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveJob(ctx, "job-test-1",
		map[string]interface{}{"status": "running"}))
	require.NoError(t, s.SaveJob(ctx, "job-test-1",
		map[string]interface{}{"status": "success"}))
}
