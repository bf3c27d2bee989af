package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
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

func testClient(t *testing.T) *httputil.Client {
	t.Helper()
	return httputil.New(config.SourceConfig{
		RequestsPerMinute: 6000,
		Timeout:           5 * time.Second,
		MaxRetries:        0,
		BackoffFactor:     2,
	}, logger.Nop())
}

func newRecord(t *testing.T) *record.StockRecord {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	return record.New(cat, "RELIANCE", "Reliance Industries")
}

// chartPayload holds a three-day response; the middle day is a
// holiday placeholder with null quotes.
const chartPayload = `{
  "chart": {
    "result": [{
      "meta": {"currency": "INR", "symbol": "RELIANCE.NS", "regularMarketPrice": 2950.5},
      "timestamp": [1770100200, 1770186600, 1770273000],
      "indicators": {
        "quote": [{
          "open":   [2900.123, null, 2930.0],
          "high":   [2955.0,   null, 2960.456],
          "low":    [2890.0,   null, 2920.0],
          "close":  [2940.555, null, 2950.5],
          "volume": [1000000,  null, 1200000]
        }],
        "adjclose": [{"adjclose": [2940.555, null, 2950.5]}]
      }
    }],
    "error": null
  }
}`

const summaryPayload = `{
  "quoteSummary": {
    "result": [{
      "summaryDetail": {
        "trailingPE": {"raw": 24.3, "fmt": "24.30"},
        "dividendYield": {"raw": 0.0045, "fmt": "0.45%"},
        "marketCap": {"raw": 19900000000000, "fmt": "19.9T"}
      },
      "defaultKeyStatistics": {
        "trailingEps": {"raw": 121.4, "fmt": "121.40"},
        "bookValue": {"raw": 612.3, "fmt": "612.30"},
        "sharesOutstanding": {"raw": 6766000000, "fmt": "6.77B"}
      }
    }],
    "error": null
  }
}`

// chartServer answers both the chart and quoteSummary endpoints.
func chartServer(t *testing.T, withSummary bool) (*httptest.Server, *Extractor) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/chart/"):
			fmt.Fprint(w, chartPayload)
		case withSummary && strings.HasPrefix(r.URL.Path, "/summary/"):
			fmt.Fprint(w, summaryPayload)
		default:
			http.NotFound(w, r)
		}
	}))
	e := New(testClient(t), logger.Nop()).WithBaseURLs(srv.URL+"/chart", srv.URL+"/summary")
	return srv, e
}

func TestResolveTicker(t *testing.T) {
	assert.Equal(t, "RELIANCE.NS", resolveTicker("RELIANCE"))
	assert.Equal(t, "RELIANCE.NS", resolveTicker("RELIANCE.NS"))
	assert.Equal(t, "500325.BO", resolveTicker("500325.BO"))
	assert.Equal(t, "M&M.NS", resolveTicker("M&M"))
}

func TestExtractSuccess(t *testing.T) {
	srv, e := chartServer(t, true)
	defer srv.Close()

	r := newRecord(t)
	a := e.Extract(context.Background(), "RELIANCE", r)

	require.Equal(t, record.StatusSuccess, a.Status)
	assert.Empty(t, a.FieldsFailed)

	// Null-quote holiday row dropped, bars newest first.
	require.Len(t, r.PriceHistory, 2)
	assert.InDelta(t, 2950.5, r.PriceHistory[0].Close, 0.001)
	assert.InDelta(t, 2940.56, r.PriceHistory[1].Close, 0.001)
	assert.True(t, r.PriceHistory[0].Date.After(r.PriceHistory[1].Date))

	closePx, ok := r.GetFloat("close")
	require.True(t, ok)
	assert.InDelta(t, 2950.5, closePx, 0.001)

	prev, ok := r.GetFloat("prev_close")
	require.True(t, ok)
	assert.InDelta(t, 2940.56, prev, 0.001)

	high, ok := r.GetFloat("high")
	require.True(t, ok)
	assert.InDelta(t, 2960.46, high, 0.001)
}

func TestExtractQuoteSummaryFundamentals(t *testing.T) {
	srv, e := chartServer(t, true)
	defer srv.Close()

	r := newRecord(t)
	e.Extract(context.Background(), "RELIANCE", r)

	// Market cap lands in crore.
	mcap, ok := r.GetFloat("market_cap")
	require.True(t, ok)
	assert.InDelta(t, 1990000, mcap, 0.001)

	pe, ok := r.GetFloat("pe_ratio")
	require.True(t, ok)
	assert.InDelta(t, 24.3, pe, 0.001)

	dy, ok := r.GetFloat("dividend_yield")
	require.True(t, ok)
	assert.InDelta(t, 0.45, dy, 0.001)

	shares, ok := r.GetField("shares_outstanding")
	require.True(t, ok)
	assert.Equal(t, int64(6766000000), shares)
}

func TestExtractSummaryUnavailableIsPartial(t *testing.T) {
	srv, e := chartServer(t, false)
	defer srv.Close()

	r := newRecord(t)
	a := e.Extract(context.Background(), "RELIANCE", r)

	require.Equal(t, record.StatusPartial, a.Status)
	assert.Contains(t, a.FieldsFailed, "market_cap")

	// Price history still landed.
	assert.Len(t, r.PriceHistory, 2)
	_, ok := r.GetFloat("close")
	assert.True(t, ok)
}

func TestExtractRecordsRetryCount(t *testing.T) {
	var chartCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/chart/"):
			if atomic.AddInt32(&chartCalls, 1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, chartPayload)
		case strings.HasPrefix(r.URL.Path, "/summary/"):
			fmt.Fprint(w, summaryPayload)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := httputil.New(config.SourceConfig{
		RequestsPerMinute: 6000,
		Timeout:           5 * time.Second,
		MaxRetries:        1,
		BackoffFactor:     2,
	}, logger.Nop())
	e := New(c, logger.Nop()).WithBaseURLs(srv.URL+"/chart", srv.URL+"/summary")
	r := newRecord(t)

	a := e.Extract(context.Background(), "RELIANCE", r)

	assert.Equal(t, record.StatusSuccess, a.Status)
	assert.Equal(t, 1, a.RetryCount)
}

func TestExtractChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	e := New(testClient(t), logger.Nop()).WithBaseURLs(srv.URL, srv.URL)
	r := newRecord(t)

	a := e.Extract(context.Background(), "DELISTEDCO", r)

	require.Equal(t, record.StatusFailed, a.Status)
	assert.Contains(t, a.ErrorMessage, "delisted")
	assert.Empty(t, r.PriceHistory)
}

func TestExtractHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	e := New(testClient(t), logger.Nop()).WithBaseURLs(srv.URL, srv.URL)
	r := newRecord(t)

	a := e.Extract(context.Background(), "RELIANCE", r)

	assert.Equal(t, record.StatusFailed, a.Status)
	assert.NotEmpty(t, a.ErrorMessage)
	assert.Len(t, a.FieldsFailed, len(providedFields))
}

func TestHistoryAllRowsNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
  "chart": {
    "result": [{
      "timestamp": [1770100200],
      "indicators": {"quote": [{"open": [null], "high": [null], "low": [null], "close": [null], "volume": [null]}]}
    }],
    "error": null
  }
}`)
	}))
	defer srv.Close()

	e := New(testClient(t), logger.Nop()).WithBaseURLs(srv.URL, srv.URL)

	bars, err := e.History(context.Background(), "RELIANCE", "1mo")
	require.NoError(t, err)
	assert.Empty(t, bars)
}
