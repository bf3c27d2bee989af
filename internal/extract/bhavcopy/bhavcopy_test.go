package bhavcopy

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/config"
	"github.com/stockpulse/platform/pkg/httputil"
	"github.com/stockpulse/platform/pkg/logger"
)

const bhavCSV = `SYMBOL,SERIES,OPEN,HIGH,LOW,CLOSE,LAST,PREVCLOSE,TOTTRDQTY,TOTTRDVAL,TIMESTAMP,TOTALTRADES,ISIN
RELIANCE,EQ,2900.00,2950.00,2890.00,2940.50,2940.00,2895.00,1000000,29400000000,06-FEB-2026,50000,INE002A01018
RELIANCE,BE,1.00,1.00,1.00,1.00,1.00,1.00,1,1,06-FEB-2026,1,INE002A01018
TCS,EQ,4100.00,4150.00,4080.00,4120.25,4120.00,4095.00,250000,10300000000,06-FEB-2026,18000,INE467B01029
`

const deliveryCSV = `SYMBOL, SERIES, DELIV_QTY, DELIV_PER
RELIANCE, EQ, 600000, 60.00
TCS, EQ, 100000, 40.00
`

func newRecord(t *testing.T, symbol, name string) *record.StockRecord {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	return record.New(cat, symbol, name)
}

func testClient(t *testing.T) *httputil.Client {
	t.Helper()
	return httputil.New(config.SourceConfig{
		RequestsPerMinute: 6000,
		Timeout:           5 * time.Second,
		MaxRetries:        0,
		BackoffFactor:     2,
	}, logger.Nop())
}

func zipCSV(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create(name)
	require.NoError(t, err)
	_, err = f.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// archiveServer serves the bhavcopy zip and delivery CSV for exactly
// one date; everything else is a 404.
func archiveServer(t *testing.T, day time.Time, withDelivery bool) *httptest.Server {
	t.Helper()
	stamp := strings.ToUpper(day.Format("02Jan2006"))
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "cm"+stamp+"bhav.csv.zip"):
			w.Write(zipCSV(t, "cm"+stamp+"bhav.csv", bhavCSV))
		case withDelivery && strings.HasSuffix(r.URL.Path, "sec_bhavdata_full_"+day.Format("02012006")+".csv"):
			w.Write([]byte(deliveryCSV))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newExtractor(t *testing.T, srv *httptest.Server, today time.Time) *Extractor {
	t.Helper()
	e := New(testClient(t), nil, logger.Nop()).WithBaseURLs(srv.URL, srv.URL)
	e.today = func() time.Time { return today }
	return e
}

func TestExtractSuccess(t *testing.T) {
	friday := time.Date(2026, 2, 6, 18, 0, 0, 0, time.UTC)
	srv := archiveServer(t, friday, true)
	defer srv.Close()

	e := newExtractor(t, srv, friday)
	r := newRecord(t, "RELIANCE", "Reliance Industries")

	a := e.Extract(context.Background(), "RELIANCE", r)

	require.Equal(t, record.StatusSuccess, a.Status)
	assert.Empty(t, a.FieldsFailed)

	closePx, ok := r.GetFloat("close")
	require.True(t, ok)
	assert.InDelta(t, 2940.50, closePx, 0.001)

	vol, ok := r.GetField("volume")
	require.True(t, ok)
	assert.Equal(t, int64(1000000), vol)

	// Turnover arrives in rupees; the record carries crore.
	turnover, ok := r.GetFloat("turnover")
	require.True(t, ok)
	assert.InDelta(t, 2940.0, turnover, 0.001)

	dp, ok := r.GetFloat("delivery_percentage")
	require.True(t, ok)
	assert.InDelta(t, 60.0, dp, 0.001)

	date, ok := r.GetString("date")
	require.True(t, ok)
	assert.Equal(t, "2026-02-06", date)
}

func TestExtractWalksBackOverWeekend(t *testing.T) {
	friday := time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 2, 8, 10, 0, 0, 0, time.UTC)
	srv := archiveServer(t, friday, true)
	defer srv.Close()

	e := newExtractor(t, srv, sunday)
	r := newRecord(t, "TCS", "Tata Consultancy Services")

	a := e.Extract(context.Background(), "TCS", r)

	require.Equal(t, record.StatusSuccess, a.Status)
	date, ok := r.GetString("date")
	require.True(t, ok)
	assert.Equal(t, "2026-02-06", date)
}

func TestExtractSymbolMissing(t *testing.T) {
	friday := time.Date(2026, 2, 6, 18, 0, 0, 0, time.UTC)
	srv := archiveServer(t, friday, true)
	defer srv.Close()

	e := newExtractor(t, srv, friday)
	r := newRecord(t, "NOSUCHCO", "")

	a := e.Extract(context.Background(), "NOSUCHCO", r)

	require.Equal(t, record.StatusFailed, a.Status)
	assert.Contains(t, a.ErrorMessage, "NOSUCHCO")
	assert.Len(t, a.FieldsFailed, len(providedFields))
}

func TestExtractDeliveryUnavailable(t *testing.T) {
	friday := time.Date(2026, 2, 6, 18, 0, 0, 0, time.UTC)
	srv := archiveServer(t, friday, false)
	defer srv.Close()

	e := newExtractor(t, srv, friday)
	r := newRecord(t, "RELIANCE", "Reliance Industries")

	a := e.Extract(context.Background(), "RELIANCE", r)

	require.Equal(t, record.StatusPartial, a.Status)
	assert.ElementsMatch(t, []string{"delivery_volume", "delivery_percentage"}, a.FieldsFailed)

	_, ok := r.GetFloat("close")
	assert.True(t, ok)
}

func TestExtractNoBhavcopyPublished(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	e := newExtractor(t, srv, time.Date(2026, 2, 6, 18, 0, 0, 0, time.UTC))
	r := newRecord(t, "RELIANCE", "Reliance Industries")

	a := e.Extract(context.Background(), "RELIANCE", r)

	assert.Equal(t, record.StatusFailed, a.Status)
	assert.NotEmpty(t, a.ErrorMessage)
}

func TestParseZipFiltersSeries(t *testing.T) {
	data, err := parseZip(zipCSV(t, "bhav.csv", bhavCSV))
	require.NoError(t, err)

	require.Contains(t, data, "RELIANCE")
	assert.Equal(t, "EQ", data["RELIANCE"]["SERIES"])
	assert.Len(t, data, 2)
}
