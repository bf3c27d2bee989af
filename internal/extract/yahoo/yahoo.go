// Package yahoo extracts price history from the Yahoo Finance chart
// API. Indian listings resolve to their NSE ticker with the .NS
// suffix.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	neturl "net/url"
	"strings"
	"time"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/extract"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/httputil"
	"github.com/stockpulse/platform/pkg/logger"
)

const (
	defaultBaseURL  = "https://query1.finance.yahoo.com/v8/finance/chart"
	defaultQuoteURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
)

var providedFields = []string{
	"date", "open", "high", "low", "close", "adjusted_close",
	"volume", "prev_close",
	"market_cap", "pe_ratio", "eps", "book_value_per_share",
	"dividend_yield", "shares_outstanding",
}

// chartResponse mirrors the slice of the chart API payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency     string  `json:"currency"`
				Symbol       string  `json:"symbol"`
				RegularPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// rawValue is the {"raw": n, "fmt": "..."} number wrapper the
// quoteSummary API uses.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

// summaryResponse mirrors the quoteSummary modules we read.
type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE    rawValue `json:"trailingPE"`
				DividendYield rawValue `json:"dividendYield"`
				MarketCap     rawValue `json:"marketCap"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				TrailingEps       rawValue `json:"trailingEps"`
				BookValue         rawValue `json:"bookValue"`
				SharesOutstanding rawValue `json:"sharesOutstanding"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Extractor fetches daily bars and summary fundamentals.
type Extractor struct {
	client   *httputil.Client
	log      *logger.Logger
	baseURL  string
	quoteURL string
	rng      string
}

// New returns a yahoo Extractor fetching two years of daily bars.
func New(client *httputil.Client, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		client:   client,
		log:      log,
		baseURL:  defaultBaseURL,
		quoteURL: defaultQuoteURL,
		rng:      "2y",
	}
}

// WithBaseURLs overrides the chart and quoteSummary endpoints, used
// in tests.
func (e *Extractor) WithBaseURLs(chart, quote string) *Extractor {
	e.baseURL = chart
	e.quoteURL = quote
	return e
}

// WithRange overrides the history range (e.g. "10y").
func (e *Extractor) WithRange(rng string) *Extractor {
	e.rng = rng
	return e
}

func (e *Extractor) Source() catalog.Source { return catalog.SrcYahoo }

func (e *Extractor) ProvidedFields() []string { return providedFields }

// Extract fetches the bar history, stores it newest first on the
// record and sets the latest day's price fields.
func (e *Extractor) Extract(ctx context.Context, symbol string, r *record.StockRecord) *record.ExtractionAttempt {
	attempt := extract.Begin(e.Source(), symbol)
	retriesBefore := e.client.Retries()
	defer func() { attempt.RetryCount = e.client.Retries() - retriesBefore }()

	bars, err := e.History(ctx, symbol, e.rng)
	if err != nil {
		e.log.WithError(err).WithField("symbol", symbol).Warn("Yahoo chart fetch failed")
		return extract.Fail(attempt, providedFields, err)
	}
	if len(bars) == 0 {
		return extract.Fail(attempt, providedFields, fmt.Errorf("no bars returned for %s", symbol))
	}

	r.PriceHistory = bars

	latest := bars[0]
	r.SetField("date", latest.Date.Format("2006-01-02"), catalog.SrcYahoo)
	attempt.FieldsExtracted = append(attempt.FieldsExtracted, "date")
	for _, f := range []struct {
		name  string
		value interface{}
	}{
		{"open", latest.Open},
		{"high", latest.High},
		{"low", latest.Low},
		{"close", latest.Close},
		{"adjusted_close", latest.AdjClose},
		{"volume", latest.Volume},
	} {
		r.SetMulti(f.name, f.value, catalog.SrcYahoo)
		attempt.FieldsExtracted = append(attempt.FieldsExtracted, f.name)
	}
	if len(bars) > 1 {
		r.SetMulti("prev_close", bars[1].Close, catalog.SrcYahoo)
		attempt.FieldsExtracted = append(attempt.FieldsExtracted, "prev_close")
	}

	// Fundamentals are a best-effort supplement; a missing summary
	// leaves the attempt partial.
	if err := e.quoteSummary(ctx, symbol, r, attempt); err != nil {
		e.log.WithError(err).WithField("symbol", symbol).Debug("Quote summary unavailable")
	}

	return extract.Complete(attempt, providedFields)
}

// quoteSummary fetches valuation fundamentals from the quoteSummary
// modules and stores them as multi-source observations.
func (e *Extractor) quoteSummary(ctx context.Context, symbol string, r *record.StockRecord, attempt *record.ExtractionAttempt) error {
	url := fmt.Sprintf("%s/%s?modules=summaryDetail%%2CdefaultKeyStatistics",
		e.quoteURL, neturl.PathEscape(resolveTicker(symbol)))

	body, err := e.client.GetBytes(ctx, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return fmt.Errorf("fetch quote summary: %w", err)
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode quote summary: %w", err)
	}
	if resp.QuoteSummary.Error != nil {
		return fmt.Errorf("quote summary api: %s: %s",
			resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return fmt.Errorf("quote summary api: empty result")
	}

	res := resp.QuoteSummary.Result[0]
	set := func(name string, value interface{}) {
		r.SetMulti(name, value, catalog.SrcYahoo)
		attempt.FieldsExtracted = append(attempt.FieldsExtracted, name)
	}

	if v := res.SummaryDetail.MarketCap.Raw; v != nil {
		// Rupees on the wire, crore on the record.
		set("market_cap", round2(*v/1e7))
	}
	if v := res.SummaryDetail.TrailingPE.Raw; v != nil {
		set("pe_ratio", round2(*v))
	}
	if v := res.SummaryDetail.DividendYield.Raw; v != nil {
		set("dividend_yield", round2(*v*100))
	}
	if v := res.DefaultKeyStatistics.TrailingEps.Raw; v != nil {
		set("eps", round2(*v))
	}
	if v := res.DefaultKeyStatistics.BookValue.Raw; v != nil {
		set("book_value_per_share", round2(*v))
	}
	if v := res.DefaultKeyStatistics.SharesOutstanding.Raw; v != nil {
		set("shares_outstanding", int64(*v))
	}
	return nil
}

// History fetches daily bars for the given range, newest first.
func (e *Extractor) History(ctx context.Context, symbol, rng string) ([]record.PriceBar, error) {
	url := fmt.Sprintf("%s/%s?range=%s&interval=1d&events=div%%2Csplit",
		e.baseURL, neturl.PathEscape(resolveTicker(symbol)), rng)

	body, err := e.client.GetBytes(ctx, url, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("fetch chart: %w", err)
	}

	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode chart response: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart api: %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart api: empty result")
	}

	res := resp.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart api: no quote data")
	}
	quote := res.Indicators.Quote[0]

	var adj []*float64
	if len(res.Indicators.AdjClose) > 0 {
		adj = res.Indicators.AdjClose[0].AdjClose
	}

	// Oldest first in the payload; build newest first.
	bars := make([]record.PriceBar, 0, len(res.Timestamp))
	for i := len(res.Timestamp) - 1; i >= 0; i-- {
		c := deref(quote.Close, i)
		if c == 0 {
			// Holiday placeholder rows carry nulls.
			continue
		}
		bar := record.PriceBar{
			Date:   time.Unix(res.Timestamp[i], 0).UTC(),
			Open:   round2(deref(quote.Open, i)),
			High:   round2(deref(quote.High, i)),
			Low:    round2(deref(quote.Low, i)),
			Close:  round2(c),
			Volume: derefInt(quote.Volume, i),
		}
		if adj != nil {
			bar.AdjClose = round2(deref(adj, i))
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// resolveTicker maps an NSE symbol to its Yahoo ticker.
func resolveTicker(symbol string) string {
	if strings.HasSuffix(symbol, ".NS") || strings.HasSuffix(symbol, ".BO") {
		return symbol
	}
	return symbol + ".NS"
}

func deref(xs []*float64, i int) float64 {
	if i < len(xs) && xs[i] != nil {
		return *xs[i]
	}
	return 0
}

func derefInt(xs []*int64, i int) int64 {
	if i < len(xs) && xs[i] != nil {
		return *xs[i]
	}
	return 0
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
