// Package bhavcopy extracts daily OHLCV and delivery data from the
// NSE bhavcopy archives. The bhavcopy is one zipped CSV per trading
// day covering every listed security, so a day's download is cached
// and shared across symbols.
package bhavcopy

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/clean"
	"github.com/stockpulse/platform/internal/extract"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/httputil"
	"github.com/stockpulse/platform/pkg/logger"
	"github.com/stockpulse/platform/pkg/redis"
)

const (
	defaultArchiveURL  = "https://archives.nseindia.com/content/historical/EQUITIES"
	defaultDeliveryURL = "https://archives.nseindia.com/products/content"

	// Trading holidays and weekends mean the latest bhavcopy can be
	// a few days old.
	maxLookbackDays = 5
)

var providedFields = []string{
	"date", "open", "high", "low", "close", "volume",
	"delivery_volume", "delivery_percentage", "turnover",
	"trades_count", "prev_close",
}

// row is one parsed CSV line keyed by (trimmed) column name.
type row map[string]string

// Extractor downloads and parses NSE bhavcopy files.
type Extractor struct {
	client      *httputil.Client
	cache       *redis.Cache
	log         *logger.Logger
	archiveURL  string
	deliveryURL string
	today       func() time.Time
}

// New returns a bhavcopy Extractor. cache may be nil.
func New(client *httputil.Client, cache *redis.Cache, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		client:      client,
		cache:       cache,
		log:         log,
		archiveURL:  defaultArchiveURL,
		deliveryURL: defaultDeliveryURL,
		today:       time.Now,
	}
}

// WithBaseURLs overrides the archive endpoints, used in tests.
func (e *Extractor) WithBaseURLs(archive, delivery string) *Extractor {
	e.archiveURL = archive
	e.deliveryURL = delivery
	return e
}

func (e *Extractor) Source() catalog.Source { return catalog.SrcNSEBhavcopy }

func (e *Extractor) ProvidedFields() []string { return providedFields }

// Extract pulls the latest trading day's row for symbol into the
// record, walking back over weekends and holidays.
func (e *Extractor) Extract(ctx context.Context, symbol string, r *record.StockRecord) *record.ExtractionAttempt {
	attempt := extract.Begin(e.Source(), symbol)
	retriesBefore := e.client.Retries()
	defer func() { attempt.RetryCount = e.client.Retries() - retriesBefore }()

	day, data, err := e.latestBhavcopy(ctx)
	if err != nil {
		e.log.WithError(err).WithField("symbol", symbol).Warn("Bhavcopy fetch failed")
		return extract.Fail(attempt, providedFields, err)
	}

	rw, ok := data[symbol]
	if !ok {
		return extract.Fail(attempt, providedFields,
			fmt.Errorf("symbol %s not in bhavcopy for %s", symbol, day.Format("2006-01-02")))
	}

	r.SetField("date", day.Format("2006-01-02"), catalog.SrcNSEBhavcopy)
	attempt.FieldsExtracted = append(attempt.FieldsExtracted, "date")

	for _, m := range []struct {
		field  string
		column string
	}{
		{"open", "OPEN"}, {"high", "HIGH"}, {"low", "LOW"},
		{"close", "CLOSE"}, {"prev_close", "PREVCLOSE"},
		{"volume", "TOTTRDQTY"}, {"turnover", "TOTTRDVAL"},
		{"trades_count", "TOTALTRADES"},
	} {
		if v, ok := parseColumn(rw, m.column, m.field); ok {
			r.SetField(m.field, v, catalog.SrcNSEBhavcopy)
			attempt.FieldsExtracted = append(attempt.FieldsExtracted, m.field)
		}
	}

	if delivery, err := e.deliveryForDate(ctx, day); err != nil {
		e.log.WithError(err).WithField("symbol", symbol).Debug("Delivery data unavailable")
	} else if drow, ok := delivery[symbol]; ok {
		for _, m := range []struct {
			field  string
			column string
		}{
			{"delivery_volume", "DELIV_QTY"},
			{"delivery_percentage", "DELIV_PER"},
		} {
			if v, ok := parseColumn(drow, m.column, m.field); ok {
				r.SetField(m.field, v, catalog.SrcNSEBhavcopy)
				attempt.FieldsExtracted = append(attempt.FieldsExtracted, m.field)
			}
		}
	}

	return extract.Complete(attempt, providedFields)
}

// latestBhavcopy finds the most recent trading day with a published
// bhavcopy, trying today first.
func (e *Extractor) latestBhavcopy(ctx context.Context) (time.Time, map[string]row, error) {
	var lastErr error
	day := e.today().UTC()
	for i := 0; i <= maxLookbackDays; i++ {
		d := day.AddDate(0, 0, -i)
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		data, err := e.bhavcopyForDate(ctx, d)
		if err != nil {
			lastErr = err
			continue
		}
		return d, data, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no trading day in the last %d days", maxLookbackDays)
	}
	return time.Time{}, nil, lastErr
}

func (e *Extractor) bhavcopyForDate(ctx context.Context, d time.Time) (map[string]row, error) {
	key := redis.BhavcopyKey(d.Format("2006-01-02"))
	var cached map[string]row
	if e.cache != nil {
		if hit, err := e.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	// cm{DDMMMYYYY}bhav.csv.zip with the month uppercased.
	stamp := strings.ToUpper(d.Format("02Jan2006"))
	url := fmt.Sprintf("%s/%d/%s/cm%sbhav.csv.zip",
		e.archiveURL, d.Year(), strings.ToUpper(d.Format("Jan")), stamp)

	e.log.WithField("url", url).Debug("Fetching bhavcopy")
	body, err := e.client.GetBytes(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download bhavcopy: %w", err)
	}

	data, err := parseZip(body)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, data, redis.TTLDaily); err != nil {
			e.log.WithError(err).Debug("Bhavcopy cache write failed")
		}
	}
	e.log.WithFields(map[string]interface{}{
		"date":    d.Format("2006-01-02"),
		"symbols": len(data),
	}).Info("Bhavcopy parsed")
	return data, nil
}

func (e *Extractor) deliveryForDate(ctx context.Context, d time.Time) (map[string]row, error) {
	key := redis.DeliveryKey(d.Format("2006-01-02"))
	var cached map[string]row
	if e.cache != nil {
		if hit, err := e.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/sec_bhavdata_full_%s.csv", e.deliveryURL, d.Format("02012006"))
	body, err := e.client.GetBytes(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download delivery data: %w", err)
	}

	data, err := parseCSV(bytes.NewReader(body), "")
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, data, redis.TTLDaily); err != nil {
			e.log.WithError(err).Debug("Delivery cache write failed")
		}
	}
	return data, nil
}

// parseZip opens the single CSV inside a bhavcopy zip and indexes the
// EQ-series rows by symbol.
func parseZip(body []byte) (map[string]row, error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("open bhavcopy zip: %w", err)
	}
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		defer rc.Close()
		return parseCSV(rc, "EQ")
	}
	return nil, fmt.Errorf("no csv inside bhavcopy zip")
}

// parseCSV indexes rows by symbol. When series is non-empty, rows of
// other series are dropped.
func parseCSV(r io.Reader, series string) (map[string]row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	out := make(map[string]row)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rw := make(row, len(header))
		for i, col := range header {
			if i < len(rec) {
				rw[col] = strings.TrimSpace(rec[i])
			}
		}
		if series != "" && rw["SERIES"] != series {
			continue
		}
		if sym := rw["SYMBOL"]; sym != "" {
			out[sym] = rw
		}
	}
	return out, nil
}

// parseColumn coerces one CSV cell into the field's value. Turnover
// arrives in raw rupees and is reported in crore.
func parseColumn(rw row, column, field string) (interface{}, bool) {
	raw, ok := rw[column]
	if !ok || raw == "" || raw == "-" {
		return nil, false
	}
	switch field {
	case "volume", "delivery_volume", "trades_count":
		n, ok := clean.Int(raw)
		if !ok {
			return nil, false
		}
		return n, true
	case "turnover":
		f, ok := clean.Float(raw)
		if !ok {
			return nil, false
		}
		return math.Round(f/1e7*100) / 100, true
	default:
		f, ok := clean.Float(raw)
		if !ok {
			return nil, false
		}
		return f, true
	}
}
