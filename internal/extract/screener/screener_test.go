package screener

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
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

const companyPage = `<!DOCTYPE html>
<html>
<body>
<h1>Infosys Ltd</h1>
<ul id="top-ratios">
  <li><span class="name">Market Cap</span><span class="number">6,10,000</span> Cr.</li>
  <li><span class="name">Current Price</span><span class="number">1,475</span></li>
  <li><span class="name">Stock P/E</span><span class="number">24.3</span></li>
  <li><span class="name">Book Value</span><span class="number">215</span></li>
  <li><span class="name">Dividend Yield</span><span class="number">2.45</span></li>
  <li><span class="name">ROE</span><span class="number">31.8</span></li>
  <li><span class="name">Face Value</span><span class="number">5.00</span></li>
</ul>
<section id="quarters">
  <table class="data-table">
    <thead>
      <tr><th></th><th>Dec 2025</th><th>Mar 2026</th><th>Jun 2026</th></tr>
    </thead>
    <tbody>
      <tr><td>Sales</td><td>38,000</td><td>39,500</td><td>40,925</td></tr>
      <tr><td>OPM %</td><td>24%</td><td>23%</td><td>25%</td></tr>
      <tr><td>Net Profit +</td><td>6,100</td><td>6,400</td><td>6,800</td></tr>
      <tr><td>EPS in Rs</td><td>14.7</td><td>15.4</td><td>16.4</td></tr>
    </tbody>
  </table>
</section>
<section id="profit-loss">
  <table class="data-table">
    <thead>
      <tr><th></th><th>Mar 2025</th><th>Mar 2026</th></tr>
    </thead>
    <tbody>
      <tr><td>Sales</td><td>1,46,000</td><td>1,58,000</td></tr>
      <tr><td>Net Profit +</td><td>24,100</td><td>26,200</td></tr>
    </tbody>
  </table>
</section>
<section id="shareholding">
  <table class="data-table">
    <thead>
      <tr><th></th><th>Mar 2026</th><th>Jun 2026</th></tr>
    </thead>
    <tbody>
      <tr><td>Promoters +</td><td>14.71</td><td>14.61</td></tr>
      <tr><td>FIIs +</td><td>33.50</td><td>34.10</td></tr>
      <tr><td>DIIs +</td><td>38.20</td><td>38.05</td></tr>
      <tr><td>Public +</td><td>13.59</td><td>13.24</td></tr>
    </tbody>
  </table>
</section>
</body>
</html>`

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
	return record.New(cat, "INFY", "")
}

func TestExtractSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, companyPage)
	}))
	defer srv.Close()

	e := New(testClient(t), logger.Nop()).WithBaseURL(srv.URL)
	r := newRecord(t)

	a := e.Extract(context.Background(), "INFY", r)

	require.Equal(t, record.StatusSuccess, a.Status)
	assert.Equal(t, "/INFY/consolidated/", gotPath)
	assert.Equal(t, "Infosys Ltd", r.CompanyName)

	mcap, ok := r.GetFloat("market_cap")
	require.True(t, ok)
	assert.InDelta(t, 610000, mcap, 0.001)

	pe, ok := r.GetFloat("pe_ratio")
	require.True(t, ok)
	assert.InDelta(t, 24.3, pe, 0.001)

	roe, ok := r.GetFloat("roe")
	require.True(t, ok)
	assert.InDelta(t, 31.8, roe, 0.001)
}

func TestExtractQuarterlyResultsNewestFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, companyPage)
	}))
	defer srv.Close()

	e := New(testClient(t), logger.Nop()).WithBaseURL(srv.URL)
	r := newRecord(t)

	e.Extract(context.Background(), "INFY", r)

	require.Len(t, r.QuarterlyResults, 3)
	latest := r.QuarterlyResults[0]
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), latest.Date)

	rev, ok := latest.Value("revenue")
	require.True(t, ok)
	assert.InDelta(t, 40925, rev, 0.001)

	margin, ok := latest.Value("operating_margin")
	require.True(t, ok)
	assert.InDelta(t, 25, margin, 0.001)

	oldest := r.QuarterlyResults[2]
	rev, ok = oldest.Value("revenue")
	require.True(t, ok)
	assert.InDelta(t, 38000, rev, 0.001)

	// Latest quarter also lands on the record itself.
	recRev, ok := r.GetFloat("revenue")
	require.True(t, ok)
	assert.InDelta(t, 40925, recRev, 0.001)
}

func TestExtractAnnualResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, companyPage)
	}))
	defer srv.Close()

	e := New(testClient(t), logger.Nop()).WithBaseURL(srv.URL)
	r := newRecord(t)

	e.Extract(context.Background(), "INFY", r)

	require.Len(t, r.AnnualResults, 2)
	rev, ok := r.AnnualResults[0].Value("revenue")
	require.True(t, ok)
	assert.InDelta(t, 158000, rev, 0.001)
}

func TestExtractShareholding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, companyPage)
	}))
	defer srv.Close()

	e := New(testClient(t), logger.Nop()).WithBaseURL(srv.URL)
	r := newRecord(t)

	e.Extract(context.Background(), "INFY", r)

	require.Len(t, r.ShareholdingHistory, 2)

	promoter, ok := r.GetFloat("promoter_holding")
	require.True(t, ok)
	assert.InDelta(t, 14.61, promoter, 0.001)

	fii, ok := r.GetFloat("fii_holding")
	require.True(t, ok)
	assert.InDelta(t, 34.10, fii, 0.001)

	prev, ok := r.ShareholdingHistory[1].Value("promoter_holding")
	require.True(t, ok)
	assert.InDelta(t, 14.71, prev, 0.001)
}

func TestExtractFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	e := New(testClient(t), logger.Nop()).WithBaseURL(srv.URL)
	r := newRecord(t)

	a := e.Extract(context.Background(), "INFY", r)

	assert.Equal(t, record.StatusFailed, a.Status)
	assert.NotEmpty(t, a.ErrorMessage)
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), parsePeriod("Mar 2026"))
	assert.True(t, parsePeriod("garbage").IsZero())
}
