package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/record"
)

// fixedExtractor sets one field on every record.
type fixedExtractor struct{}

func (fixedExtractor) Source() catalog.Source { return catalog.SrcYahoo }

func (fixedExtractor) ProvidedFields() []string { return []string{"close"} }

func (fixedExtractor) Extract(_ context.Context, symbol string, r *record.StockRecord) *record.ExtractionAttempt {
	a := Begin(catalog.SrcYahoo, symbol)
	r.SetField("close", 100.0, catalog.SrcYahoo)
	a.FieldsExtracted = append(a.FieldsExtracted, "close")
	return Complete(a, []string{"close"})
}

func TestBegin(t *testing.T) {
	a := Begin(catalog.SrcNSEBhavcopy, "RELIANCE")

	assert.Equal(t, catalog.SrcNSEBhavcopy, a.Source)
	assert.Equal(t, "RELIANCE", a.Symbol)
	assert.Equal(t, record.StatusRunning, a.Status)
	assert.False(t, a.StartedAt.IsZero())
}

func TestCompleteAllFieldsExtracted(t *testing.T) {
	provided := []string{"close", "volume"}
	a := Begin(catalog.SrcNSEBhavcopy, "TCS")
	a.FieldsExtracted = []string{"close", "volume"}

	Complete(a, provided)

	assert.Equal(t, record.StatusSuccess, a.Status)
	assert.Empty(t, a.FieldsFailed)
	assert.False(t, a.CompletedAt.IsZero())
}

func TestCompletePartialExtraction(t *testing.T) {
	provided := []string{"close", "volume", "delivery_percentage"}
	a := Begin(catalog.SrcNSEBhavcopy, "TCS")
	a.FieldsExtracted = []string{"close", "volume"}

	Complete(a, provided)

	assert.Equal(t, record.StatusPartial, a.Status)
	assert.Equal(t, []string{"delivery_percentage"}, a.FieldsFailed)
}

func TestCompleteNothingExtracted(t *testing.T) {
	provided := []string{"close", "volume"}
	a := Begin(catalog.SrcYahoo, "TCS")

	Complete(a, provided)

	assert.Equal(t, record.StatusFailed, a.Status)
	assert.Equal(t, provided, a.FieldsFailed)
}

func TestBatch(t *testing.T) {
	cat, err := catalog.New()
	require.NoError(t, err)
	records := map[string]*record.StockRecord{
		"RELIANCE": record.New(cat, "RELIANCE", ""),
		"TCS":      record.New(cat, "TCS", ""),
	}

	attempts := Batch(context.Background(), fixedExtractor{}, records)

	assert.Len(t, attempts, 2)
	for _, r := range records {
		assert.True(t, r.Has("close"))
		assert.Len(t, r.ExtractionHistory, 1)
	}
}

func TestBatchCancelled(t *testing.T) {
	cat, err := catalog.New()
	require.NoError(t, err)
	records := map[string]*record.StockRecord{
		"RELIANCE": record.New(cat, "RELIANCE", ""),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := Batch(ctx, fixedExtractor{}, records)
	assert.Empty(t, attempts)
}

func TestFailRecordsError(t *testing.T) {
	provided := []string{"close"}
	a := Begin(catalog.SrcYahoo, "INFY")

	Fail(a, provided, errors.New("connection refused"))

	require.Equal(t, record.StatusFailed, a.Status)
	assert.Equal(t, "connection refused", a.ErrorMessage)
	assert.Equal(t, provided, a.FieldsFailed)
}
