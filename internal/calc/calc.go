// Package calc implements the derived-field engine: every calculated
// field in the catalog, computed in dependency order so ratios that
// feed other ratios exist before they are read.
package calc

import (
	"math"
	"sort"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/logger"
)

// Options carries the tunable thresholds of the engine.
type Options struct {
	// Market-cap classification cutoffs, in INR crore.
	LargeCapCr float64
	MidCapCr   float64
}

// Engine computes all derived fields for a record. A missing input
// skips that one field and moves on; extraction gaps must never abort
// the pipeline.
type Engine struct {
	cat  *catalog.Catalog
	log  *logger.Logger
	opts Options
}

// New returns an Engine. Zero-valued thresholds fall back to the SEBI
// classification defaults (20000 Cr / 5000 Cr).
func New(cat *catalog.Catalog, log *logger.Logger, opts Options) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	if opts.LargeCapCr == 0 {
		opts.LargeCapCr = 20000
	}
	if opts.MidCapCr == 0 {
		opts.MidCapCr = 5000
	}
	return &Engine{cat: cat, log: log, opts: opts}
}

type step struct {
	name string
	fn   func(*Engine, *record.StockRecord) (interface{}, []string, bool)
}

// steps is the dependency-ordered calculation list. Phases: income
// statement, balance sheet, cash flow, financial ratios, price
// metrics, valuation, cap classification, shareholding changes.
var steps = []step{
	{"revenue_growth_yoy", (*Engine).revenueGrowthYoY},
	{"revenue_growth_qoq", (*Engine).revenueGrowthQoQ},
	{"gross_margin", (*Engine).grossMargin},
	{"net_profit_margin", (*Engine).netProfitMargin},
	{"eps_growth_yoy", (*Engine).epsGrowthYoY},
	{"ebit", (*Engine).ebit},
	{"effective_tax_rate", (*Engine).effectiveTaxRate},

	{"net_debt", (*Engine).netDebt},

	{"free_cash_flow", (*Engine).freeCashFlow},

	{"roe", (*Engine).roe},
	{"roa", (*Engine).roa},
	{"roic", (*Engine).roic},
	{"debt_to_equity", (*Engine).debtToEquity},
	{"interest_coverage", (*Engine).interestCoverage},
	{"current_ratio", (*Engine).currentRatio},
	{"quick_ratio", (*Engine).quickRatio},
	{"asset_turnover", (*Engine).assetTurnover},
	{"inventory_turnover", (*Engine).inventoryTurnover},
	{"receivables_turnover", (*Engine).receivablesTurnover},
	{"dividend_payout_ratio", (*Engine).dividendPayoutRatio},

	{"daily_return_pct", (*Engine).dailyReturnPct},
	{"return_5d_pct", (*Engine).return5d},
	{"return_20d_pct", (*Engine).return20d},
	{"return_60d_pct", (*Engine).return60d},
	{"day_range_pct", (*Engine).dayRangePct},
	{"gap_percentage", (*Engine).gapPercentage},
	{"week_52_high", (*Engine).week52High},
	{"week_52_low", (*Engine).week52Low},
	{"distance_from_52w_high", (*Engine).distanceFrom52wHigh},
	{"avg_volume_20d", (*Engine).avgVolume20d},
	{"volume_ratio", (*Engine).volumeRatio},

	{"market_cap", (*Engine).marketCap},
	{"enterprise_value", (*Engine).enterpriseValue},
	{"pe_ratio", (*Engine).peRatio},
	{"peg_ratio", (*Engine).pegRatio},
	{"pb_ratio", (*Engine).pbRatio},
	{"ps_ratio", (*Engine).psRatio},
	{"ev_to_ebitda", (*Engine).evToEBITDA},
	{"ev_to_sales", (*Engine).evToSales},
	{"dividend_yield", (*Engine).dividendYield},
	{"fcf_yield", (*Engine).fcfYield},
	{"earnings_yield", (*Engine).earningsYield},
	{"historical_pe_median", (*Engine).historicalPEMedian},

	{"market_cap_category", (*Engine).marketCapCategory},

	{"promoter_holding_change", (*Engine).promoterHoldingChange},
	{"fii_holding_change", (*Engine).fiiHoldingChange},
}

// CalculateAll runs every step in order and returns the names of the
// fields that were successfully calculated.
func (e *Engine) CalculateAll(r *record.StockRecord) []string {
	var done []string
	for _, s := range steps {
		value, inputs, ok := s.fn(e, r)
		if !ok {
			continue
		}
		r.SetCalculated(s.name, value, inputs)
		done = append(done, s.name)
	}
	e.log.WithFields(map[string]interface{}{
		"symbol":     r.Symbol,
		"calculated": len(done),
	}).Debug("Derived fields calculated")
	return done
}

// Income statement derived.

func (e *Engine) revenueGrowthYoY(r *record.StockRecord) (interface{}, []string, bool) {
	return growthFromSnapshots(r.QuarterlyResults, "revenue", 4)
}

func (e *Engine) revenueGrowthQoQ(r *record.StockRecord) (interface{}, []string, bool) {
	return growthFromSnapshots(r.QuarterlyResults, "revenue", 1)
}

func (e *Engine) grossMargin(r *record.StockRecord) (interface{}, []string, bool) {
	return ratioPct(r, "gross_profit", "revenue")
}

func (e *Engine) netProfitMargin(r *record.StockRecord) (interface{}, []string, bool) {
	return ratioPct(r, "net_profit", "revenue")
}

func (e *Engine) epsGrowthYoY(r *record.StockRecord) (interface{}, []string, bool) {
	return growthFromSnapshots(r.QuarterlyResults, "eps", 4)
}

func (e *Engine) ebit(r *record.StockRecord) (interface{}, []string, bool) {
	ebitda, ok1 := r.GetFloat("ebitda")
	dep, ok2 := r.GetFloat("depreciation")
	if ok1 && ok2 {
		return round2(ebitda - dep), []string{"ebitda", "depreciation"}, true
	}
	op, ok := r.GetFloat("operating_profit")
	if !ok {
		return nil, nil, false
	}
	return op, []string{"operating_profit"}, true
}

func (e *Engine) effectiveTaxRate(r *record.StockRecord) (interface{}, []string, bool) {
	tax, ok1 := r.GetFloat("tax_expense")
	np, ok2 := r.GetFloat("net_profit")
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	pbt := np + tax
	if pbt == 0 {
		return nil, nil, false
	}
	return round2(tax / pbt * 100), []string{"tax_expense", "net_profit"}, true
}

// Balance sheet derived.

func (e *Engine) netDebt(r *record.StockRecord) (interface{}, []string, bool) {
	debt, ok := r.GetFloat("total_debt")
	if !ok {
		return nil, nil, false
	}
	cash, _ := r.GetFloat("cash_and_equivalents")
	return round2(debt - cash), []string{"total_debt", "cash_and_equivalents"}, true
}

// Cash flow derived.

func (e *Engine) freeCashFlow(r *record.StockRecord) (interface{}, []string, bool) {
	ocf, ok := r.GetFloat("operating_cash_flow")
	if !ok {
		return nil, nil, false
	}
	capex, _ := r.GetFloat("capital_expenditure")
	return round2(ocf - math.Abs(capex)), []string{"operating_cash_flow", "capital_expenditure"}, true
}

// Financial ratios.

func (e *Engine) roe(r *record.StockRecord) (interface{}, []string, bool) {
	return ratioPct(r, "net_profit", "total_equity")
}

func (e *Engine) roa(r *record.StockRecord) (interface{}, []string, bool) {
	return ratioPct(r, "net_profit", "total_assets")
}

func (e *Engine) roic(r *record.StockRecord) (interface{}, []string, bool) {
	ebit, ok1 := r.GetFloat("ebit")
	eq, ok2 := r.GetFloat("total_equity")
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	taxRate, ok := r.GetFloat("effective_tax_rate")
	if !ok {
		taxRate = 25.0 // standard Indian corporate rate when unreported
	}
	debt, _ := r.GetFloat("total_debt")
	cash, _ := r.GetFloat("cash_and_equivalents")
	invested := eq + debt - cash
	if invested <= 0 {
		return nil, nil, false
	}
	nopat := ebit * (1 - taxRate/100)
	return round2(nopat / invested * 100),
		[]string{"ebit", "effective_tax_rate", "total_equity", "total_debt", "cash_and_equivalents"}, true
}

func (e *Engine) debtToEquity(r *record.StockRecord) (interface{}, []string, bool) {
	return ratio(r, "total_debt", "total_equity")
}

func (e *Engine) interestCoverage(r *record.StockRecord) (interface{}, []string, bool) {
	ebit, ok := r.GetFloat("ebit")
	inputs := []string{"ebit", "interest_expense"}
	if !ok {
		ebit, ok = r.GetFloat("operating_profit")
		inputs = []string{"operating_profit", "interest_expense"}
		if !ok {
			return nil, nil, false
		}
	}
	interest, ok := r.GetFloat("interest_expense")
	if !ok || interest == 0 {
		return nil, nil, false
	}
	return round2(ebit / interest), inputs, true
}

func (e *Engine) currentRatio(r *record.StockRecord) (interface{}, []string, bool) {
	return ratio(r, "current_assets", "current_liabilities")
}

func (e *Engine) quickRatio(r *record.StockRecord) (interface{}, []string, bool) {
	ca, ok1 := r.GetFloat("current_assets")
	cl, ok2 := r.GetFloat("current_liabilities")
	if !ok1 || !ok2 || cl == 0 {
		return nil, nil, false
	}
	inv, _ := r.GetFloat("inventory")
	return round2((ca - inv) / cl), []string{"current_assets", "inventory", "current_liabilities"}, true
}

func (e *Engine) assetTurnover(r *record.StockRecord) (interface{}, []string, bool) {
	return ratio(r, "revenue", "total_assets")
}

func (e *Engine) inventoryTurnover(r *record.StockRecord) (interface{}, []string, bool) {
	return ratio(r, "revenue", "inventory")
}

func (e *Engine) receivablesTurnover(r *record.StockRecord) (interface{}, []string, bool) {
	return ratio(r, "revenue", "receivables")
}

func (e *Engine) dividendPayoutRatio(r *record.StockRecord) (interface{}, []string, bool) {
	div, ok1 := r.GetFloat("dividends_paid")
	np, ok2 := r.GetFloat("net_profit")
	if !ok1 || !ok2 || np <= 0 {
		return nil, nil, false
	}
	return round2(math.Abs(div) / np * 100), []string{"dividends_paid", "net_profit"}, true
}

// Derived price metrics.

func (e *Engine) dailyReturnPct(r *record.StockRecord) (interface{}, []string, bool) {
	return changePct(r, "close", "prev_close")
}

func (e *Engine) return5d(r *record.StockRecord) (interface{}, []string, bool) {
	return e.periodReturn(r, 5)
}

func (e *Engine) return20d(r *record.StockRecord) (interface{}, []string, bool) {
	return e.periodReturn(r, 20)
}

func (e *Engine) return60d(r *record.StockRecord) (interface{}, []string, bool) {
	return e.periodReturn(r, 60)
}

func (e *Engine) periodReturn(r *record.StockRecord, days int) (interface{}, []string, bool) {
	h := r.PriceHistory
	if len(h) < days+1 {
		return nil, nil, false
	}
	current, past := h[0].Close, h[days].Close
	if past == 0 {
		return nil, nil, false
	}
	return round2((current - past) / past * 100), []string{"close"}, true
}

func (e *Engine) dayRangePct(r *record.StockRecord) (interface{}, []string, bool) {
	high, ok1 := r.GetFloat("high")
	low, ok2 := r.GetFloat("low")
	if !ok1 || !ok2 || low == 0 {
		return nil, nil, false
	}
	return round2((high - low) / low * 100), []string{"high", "low"}, true
}

func (e *Engine) gapPercentage(r *record.StockRecord) (interface{}, []string, bool) {
	return changePct(r, "open", "prev_close")
}

func (e *Engine) week52High(r *record.StockRecord) (interface{}, []string, bool) {
	best := math.Inf(-1)
	found := false
	for _, bar := range yearWindow(r.PriceHistory) {
		p := bar.High
		if p == 0 {
			p = bar.Close
		}
		if p != 0 && p > best {
			best, found = p, true
		}
	}
	if !found {
		return nil, nil, false
	}
	return best, []string{"high"}, true
}

func (e *Engine) week52Low(r *record.StockRecord) (interface{}, []string, bool) {
	best := math.Inf(1)
	found := false
	for _, bar := range yearWindow(r.PriceHistory) {
		p := bar.Low
		if p == 0 {
			p = bar.Close
		}
		if p != 0 && p < best {
			best, found = p, true
		}
	}
	if !found {
		return nil, nil, false
	}
	return best, []string{"low"}, true
}

func (e *Engine) distanceFrom52wHigh(r *record.StockRecord) (interface{}, []string, bool) {
	close, ok1 := r.GetFloat("close")
	high, ok2 := r.GetFloat("week_52_high")
	if !ok1 || !ok2 || high == 0 {
		return nil, nil, false
	}
	return round2((close - high) / high * 100), []string{"close", "week_52_high"}, true
}

func (e *Engine) avgVolume20d(r *record.StockRecord) (interface{}, []string, bool) {
	h := r.PriceHistory
	if len(h) < 20 {
		return nil, nil, false
	}
	var sum, n int64
	for _, bar := range h[:20] {
		if bar.Volume > 0 {
			sum += bar.Volume
			n++
		}
	}
	if n == 0 {
		return nil, nil, false
	}
	return sum / n, []string{"volume"}, true
}

func (e *Engine) volumeRatio(r *record.StockRecord) (interface{}, []string, bool) {
	vol, ok1 := r.GetFloat("volume")
	avg, ok2 := r.GetFloat("avg_volume_20d")
	if !ok1 || !ok2 || avg == 0 {
		return nil, nil, false
	}
	return round2(vol / avg), []string{"volume", "avg_volume_20d"}, true
}

// Valuation.

func (e *Engine) marketCap(r *record.StockRecord) (interface{}, []string, bool) {
	close, ok1 := r.GetFloat("close")
	shares, ok2 := r.GetFloat("shares_outstanding")
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	// INR crore.
	return round2(close * shares / 1e7), []string{"close", "shares_outstanding"}, true
}

func (e *Engine) enterpriseValue(r *record.StockRecord) (interface{}, []string, bool) {
	mcap, ok := r.GetFloat("market_cap")
	if !ok {
		return nil, nil, false
	}
	netDebt, _ := r.GetFloat("net_debt")
	return round2(mcap + netDebt), []string{"market_cap", "net_debt"}, true
}

func (e *Engine) peRatio(r *record.StockRecord) (interface{}, []string, bool) {
	close, ok1 := r.GetFloat("close")
	eps, ok2 := r.GetFloat("eps")
	if !ok1 || !ok2 || eps <= 0 {
		return nil, nil, false
	}
	return round2(close / eps), []string{"close", "eps"}, true
}

func (e *Engine) pegRatio(r *record.StockRecord) (interface{}, []string, bool) {
	pe, ok1 := r.GetFloat("pe_ratio")
	growth, ok2 := r.GetFloat("eps_growth_yoy")
	if !ok1 || !ok2 || growth <= 0 {
		return nil, nil, false
	}
	return round2(pe / growth), []string{"pe_ratio", "eps_growth_yoy"}, true
}

func (e *Engine) pbRatio(r *record.StockRecord) (interface{}, []string, bool) {
	close, ok1 := r.GetFloat("close")
	bvps, ok2 := r.GetFloat("book_value_per_share")
	if !ok1 || !ok2 || bvps <= 0 {
		return nil, nil, false
	}
	return round2(close / bvps), []string{"close", "book_value_per_share"}, true
}

func (e *Engine) psRatio(r *record.StockRecord) (interface{}, []string, bool) {
	mcap, ok1 := r.GetFloat("market_cap")
	rev, ok2 := r.GetFloat("revenue")
	if !ok1 || !ok2 || rev <= 0 {
		return nil, nil, false
	}
	return round2(mcap / rev), []string{"market_cap", "revenue"}, true
}

func (e *Engine) evToEBITDA(r *record.StockRecord) (interface{}, []string, bool) {
	ev, ok1 := r.GetFloat("enterprise_value")
	ebitda, ok2 := r.GetFloat("ebitda")
	if !ok1 || !ok2 || ebitda <= 0 {
		return nil, nil, false
	}
	return round2(ev / ebitda), []string{"enterprise_value", "ebitda"}, true
}

func (e *Engine) evToSales(r *record.StockRecord) (interface{}, []string, bool) {
	ev, ok1 := r.GetFloat("enterprise_value")
	rev, ok2 := r.GetFloat("revenue")
	if !ok1 || !ok2 || rev <= 0 {
		return nil, nil, false
	}
	return round2(ev / rev), []string{"enterprise_value", "revenue"}, true
}

func (e *Engine) dividendYield(r *record.StockRecord) (interface{}, []string, bool) {
	dps, ok1 := r.GetFloat("dividend_per_share")
	close, ok2 := r.GetFloat("close")
	if !ok1 || !ok2 || close <= 0 {
		return nil, nil, false
	}
	return round2(dps / close * 100), []string{"dividend_per_share", "close"}, true
}

func (e *Engine) fcfYield(r *record.StockRecord) (interface{}, []string, bool) {
	fcf, ok1 := r.GetFloat("free_cash_flow")
	mcap, ok2 := r.GetFloat("market_cap")
	if !ok1 || !ok2 || mcap <= 0 {
		return nil, nil, false
	}
	return round2(fcf / mcap * 100), []string{"free_cash_flow", "market_cap"}, true
}

func (e *Engine) earningsYield(r *record.StockRecord) (interface{}, []string, bool) {
	eps, ok1 := r.GetFloat("eps")
	close, ok2 := r.GetFloat("close")
	if !ok1 || !ok2 || close <= 0 {
		return nil, nil, false
	}
	return round2(eps / close * 100), []string{"eps", "close"}, true
}

func (e *Engine) historicalPEMedian(r *record.StockRecord) (interface{}, []string, bool) {
	eps, ok := r.GetFloat("eps")
	h := r.PriceHistory
	if !ok || eps <= 0 || len(h) == 0 {
		return nil, nil, false
	}
	// Yearly samples at 252-bar strides, up to 5 years back.
	limit := len(h)
	if limit > 1260 {
		limit = 1260
	}
	var pes []float64
	for i := 0; i < limit; i += 252 {
		if c := h[i].Close; c > 0 {
			pes = append(pes, c/eps)
		}
	}
	if len(pes) == 0 {
		return nil, nil, false
	}
	sort.Float64s(pes)
	mid := len(pes) / 2
	if len(pes)%2 == 0 {
		return round2((pes[mid-1] + pes[mid]) / 2), []string{"close", "eps"}, true
	}
	return round2(pes[mid]), []string{"close", "eps"}, true
}

func (e *Engine) marketCapCategory(r *record.StockRecord) (interface{}, []string, bool) {
	mcap, ok := r.GetFloat("market_cap")
	if !ok {
		return nil, nil, false
	}
	var cat string
	switch {
	case mcap >= e.opts.LargeCapCr:
		cat = "Large Cap"
	case mcap >= e.opts.MidCapCr:
		cat = "Mid Cap"
	default:
		cat = "Small Cap"
	}
	return cat, []string{"market_cap"}, true
}

// Shareholding changes.

func (e *Engine) promoterHoldingChange(r *record.StockRecord) (interface{}, []string, bool) {
	return holdingChange(r.ShareholdingHistory, "promoter_holding")
}

func (e *Engine) fiiHoldingChange(r *record.StockRecord) (interface{}, []string, bool) {
	return holdingChange(r.ShareholdingHistory, "fii_holding")
}

// Helpers.

// ratio returns num/den rounded to 2 decimals; den must be non-zero.
func ratio(r *record.StockRecord, num, den string) (interface{}, []string, bool) {
	n, ok1 := r.GetFloat(num)
	d, ok2 := r.GetFloat(den)
	if !ok1 || !ok2 || d == 0 {
		return nil, nil, false
	}
	return round2(n / d), []string{num, den}, true
}

// ratioPct is ratio expressed as a percentage.
func ratioPct(r *record.StockRecord, num, den string) (interface{}, []string, bool) {
	n, ok1 := r.GetFloat(num)
	d, ok2 := r.GetFloat(den)
	if !ok1 || !ok2 || d == 0 {
		return nil, nil, false
	}
	return round2(n / d * 100), []string{num, den}, true
}

// changePct is (cur - base) / base * 100.
func changePct(r *record.StockRecord, cur, base string) (interface{}, []string, bool) {
	c, ok1 := r.GetFloat(cur)
	b, ok2 := r.GetFloat(base)
	if !ok1 || !ok2 || b == 0 {
		return nil, nil, false
	}
	return round2((c - b) / b * 100), []string{cur, base}, true
}

// growthFromSnapshots compares the newest snapshot value against the
// one lag periods back, as a percentage of the older value.
func growthFromSnapshots(snaps []record.Snapshot, field string, lag int) (interface{}, []string, bool) {
	if len(snaps) < lag+1 {
		return nil, nil, false
	}
	current, ok1 := snaps[0].Value(field)
	prev, ok2 := snaps[lag].Value(field)
	if !ok1 || !ok2 || prev == 0 {
		return nil, nil, false
	}
	return round2((current - prev) / math.Abs(prev) * 100), []string{field}, true
}

// holdingChange is newest minus oldest snapshot value.
func holdingChange(snaps []record.Snapshot, field string) (interface{}, []string, bool) {
	if len(snaps) < 2 {
		return nil, nil, false
	}
	current, ok1 := snaps[0].Value(field)
	oldest, ok2 := snaps[len(snaps)-1].Value(field)
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	return round2(current - oldest), []string{field}, true
}

// yearWindow is the newest 252 bars of history.
func yearWindow(h []record.PriceBar) []record.PriceBar {
	if len(h) > 252 {
		return h[:252]
	}
	return h
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
