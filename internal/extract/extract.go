// Package extract defines the extractor contract and shared attempt
// bookkeeping. Concrete sources live in subpackages (bhavcopy, yahoo,
// screener).
package extract

import (
	"context"
	"time"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/record"
)

// Extractor pulls data for one symbol from one source into the record.
// Extract never returns an error: failures are reported through the
// attempt so the pipeline can continue with other sources.
type Extractor interface {
	Source() catalog.Source
	ProvidedFields() []string
	Extract(ctx context.Context, symbol string, r *record.StockRecord) *record.ExtractionAttempt
}

// Batch runs one extractor over a set of records sequentially,
// recording each attempt on its record. Cancellation stops before
// the next symbol; symbols not reached get no attempt.
func Batch(ctx context.Context, ex Extractor, records map[string]*record.StockRecord) []*record.ExtractionAttempt {
	attempts := make([]*record.ExtractionAttempt, 0, len(records))
	for symbol, r := range records {
		if ctx.Err() != nil {
			break
		}
		a := ex.Extract(ctx, symbol, r)
		r.RecordAttempt(*a)
		attempts = append(attempts, a)
	}
	return attempts
}

// Begin starts an attempt for one source/symbol pair.
func Begin(source catalog.Source, symbol string) *record.ExtractionAttempt {
	return &record.ExtractionAttempt{
		Source:    source,
		Symbol:    symbol,
		Status:    record.StatusRunning,
		StartedAt: time.Now().UTC(),
	}
}

// Complete fills in the failed-field list and final status from what
// was extracted: success when everything landed, partial when some
// did, failed when nothing did.
func Complete(a *record.ExtractionAttempt, provided []string) *record.ExtractionAttempt {
	a.FieldsFailed = missing(provided, a.FieldsExtracted)
	switch {
	case len(a.FieldsExtracted) == 0:
		a.Finish(record.StatusFailed)
	case len(a.FieldsFailed) > 0:
		a.Finish(record.StatusPartial)
	default:
		a.Finish(record.StatusSuccess)
	}
	return a
}

// Fail marks the attempt failed with the given error.
func Fail(a *record.ExtractionAttempt, provided []string, err error) *record.ExtractionAttempt {
	if err != nil {
		a.ErrorMessage = err.Error()
	}
	a.FieldsFailed = missing(provided, a.FieldsExtracted)
	a.Finish(record.StatusFailed)
	return a
}

func missing(provided, extracted []string) []string {
	got := make(map[string]bool, len(extracted))
	for _, f := range extracted {
		got[f] = true
	}
	var out []string
	for _, f := range provided {
		if !got[f] {
			out = append(out, f)
		}
	}
	return out
}
