// Package screener scrapes fundamentals from screener.in company
// pages: top-line ratios, quarterly results, annual results and the
// shareholding pattern.
package screener

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/clean"
	"github.com/stockpulse/platform/internal/extract"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/httputil"
	"github.com/stockpulse/platform/pkg/logger"
)

const defaultBaseURL = "https://www.screener.in/company"

var providedFields = []string{
	"company_name", "market_cap", "pe_ratio", "book_value_per_share",
	"dividend_yield", "roe", "face_value",
	"revenue", "operating_margin", "net_profit", "eps",
	"promoter_holding", "fii_holding", "dii_holding", "public_holding",
}

// topRatioFields maps screener.in ratio labels to catalog fields.
var topRatioFields = map[string]string{
	"Market Cap":     "market_cap",
	"Stock P/E":      "pe_ratio",
	"Book Value":     "book_value_per_share",
	"Dividend Yield": "dividend_yield",
	"ROE":            "roe",
	"Face Value":     "face_value",
}

// quarterlyRows maps quarterly table row labels to snapshot keys.
var quarterlyRows = map[string]string{
	"Sales":      "revenue",
	"Revenue":    "revenue",
	"OPM %":      "operating_margin",
	"Net Profit": "net_profit",
	"EPS in Rs":  "eps",
}

// shareholdingRows maps shareholding table row labels to snapshot
// keys and latest-value fields.
var shareholdingRows = map[string]string{
	"Promoters": "promoter_holding",
	"FIIs":      "fii_holding",
	"DIIs":      "dii_holding",
	"Public":    "public_holding",
}

// Extractor scrapes one company page per symbol.
type Extractor struct {
	client  *httputil.Client
	log     *logger.Logger
	baseURL string
}

// New returns a screener Extractor.
func New(client *httputil.Client, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{client: client, log: log, baseURL: defaultBaseURL}
}

// WithBaseURL overrides the site root, used in tests.
func (e *Extractor) WithBaseURL(url string) *Extractor {
	e.baseURL = url
	return e
}

func (e *Extractor) Source() catalog.Source { return catalog.SrcScreener }

func (e *Extractor) ProvidedFields() []string { return providedFields }

// Extract scrapes the consolidated company page for symbol.
func (e *Extractor) Extract(ctx context.Context, symbol string, r *record.StockRecord) *record.ExtractionAttempt {
	attempt := extract.Begin(e.Source(), symbol)
	retriesBefore := e.client.Retries()
	defer func() { attempt.RetryCount = e.client.Retries() - retriesBefore }()

	url := fmt.Sprintf("%s/%s/consolidated/", e.baseURL, symbol)
	body, err := e.client.GetBytes(ctx, url, nil)
	if err != nil {
		e.log.WithError(err).WithField("symbol", symbol).Warn("Screener fetch failed")
		return extract.Fail(attempt, providedFields, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return extract.Fail(attempt, providedFields, fmt.Errorf("parse page: %w", err))
	}

	extracted := func(name string) {
		attempt.FieldsExtracted = append(attempt.FieldsExtracted, name)
	}

	if name, ok := clean.String(doc.Find("h1").First().Text()); ok {
		r.SetField("company_name", name, catalog.SrcScreener)
		r.CompanyName = name
		extracted("company_name")
	}

	e.scrapeTopRatios(doc, r, extracted)
	if snaps := scrapeTable(doc, "#quarters", quarterlyRows); len(snaps) > 0 {
		r.QuarterlyResults = snaps
		latest := snaps[0]
		for _, f := range []string{"revenue", "operating_margin", "net_profit", "eps"} {
			if v, ok := latest.Value(f); ok {
				r.SetMulti(f, v, catalog.SrcScreener)
				extracted(f)
			}
		}
	}
	if snaps := scrapeTable(doc, "#profit-loss", quarterlyRows); len(snaps) > 0 {
		r.AnnualResults = snaps
	}
	if snaps := scrapeTable(doc, "#shareholding", shareholdingRows); len(snaps) > 0 {
		r.ShareholdingHistory = snaps
		latest := snaps[0]
		for _, f := range []string{"promoter_holding", "fii_holding", "dii_holding", "public_holding"} {
			if v, ok := latest.Value(f); ok {
				r.SetField(f, v, catalog.SrcScreener)
				extracted(f)
			}
		}
	}

	return extract.Complete(attempt, providedFields)
}

// scrapeTopRatios reads the #top-ratios list of name/number pairs.
func (e *Extractor) scrapeTopRatios(doc *goquery.Document, r *record.StockRecord, extracted func(string)) {
	doc.Find("#top-ratios li").Each(func(_ int, li *goquery.Selection) {
		label := strings.TrimSpace(li.Find(".name").First().Text())
		field, ok := topRatioFields[label]
		if !ok {
			return
		}
		raw := li.Find(".number").First().Text()
		v, ok := clean.Float(raw)
		if !ok {
			return
		}
		r.SetMulti(field, v, catalog.SrcScreener)
		extracted(field)
	})
}

// scrapeTable reads a screener data table into snapshots, newest
// first. The header row carries the period labels; each mapped body
// row contributes one value per period.
func scrapeTable(doc *goquery.Document, sectionID string, rows map[string]string) []record.Snapshot {
	table := doc.Find(sectionID + " table.data-table").First()
	if table.Length() == 0 {
		return nil
	}

	var periods []string
	table.Find("thead th").Each(func(i int, th *goquery.Selection) {
		if i == 0 {
			return // row-label column
		}
		periods = append(periods, strings.TrimSpace(th.Text()))
	})
	if len(periods) == 0 {
		return nil
	}

	// Oldest first on the page.
	snaps := make([]record.Snapshot, len(periods))
	for i, p := range periods {
		snaps[i] = record.Snapshot{
			Date:   parsePeriod(p),
			Values: make(map[string]float64),
		}
	}

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		label := strings.TrimSpace(tr.Find("td").First().Text())
		label = strings.TrimSuffix(label, " +") // expandable-row marker
		label = strings.TrimSpace(label)
		field, ok := rows[label]
		if !ok {
			return
		}
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i == 0 || i > len(snaps) {
				return
			}
			if v, ok := clean.Float(td.Text()); ok {
				snaps[i-1].Values[field] = v
			}
		})
	})

	// Drop empty columns, then reverse to newest first.
	var out []record.Snapshot
	for i := len(snaps) - 1; i >= 0; i-- {
		if len(snaps[i].Values) > 0 {
			out = append(out, snaps[i])
		}
	}
	return out
}

// parsePeriod parses screener period headers such as "Jun 2026" or
// "Mar 2026". Unparseable labels yield a zero time.
func parsePeriod(s string) time.Time {
	for _, layout := range []string{"Jan 2006", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
