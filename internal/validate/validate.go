// Package validate evaluates the scoring rules against a stock record:
// deal-breakers that mark a stock uninvestable, risk penalties that
// deduct from its score, and quality boosters that add to it.
package validate

import (
	"fmt"
	"strings"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/logger"
)

// Result is the outcome of evaluating one rule.
type Result struct {
	RuleID    string           `json:"rule_id"`
	RuleName  string           `json:"rule_name"`
	Field     string           `json:"field"`
	Type      catalog.RuleType `json:"type"`
	Severity  catalog.Severity `json:"severity"`
	Triggered bool             `json:"triggered"`
	// Informational results could not be evaluated because the input
	// data is missing. They never count as triggered.
	Informational bool    `json:"informational"`
	Impact        float64 `json:"impact"`
	Message       string  `json:"message"`
}

// Report aggregates every rule result for one stock.
type Report struct {
	DealBreakers    []Result `json:"deal_breakers"`
	RiskPenalties   []Result `json:"risk_penalties"`
	QualityBoosters []Result `json:"quality_boosters"`

	IsInvestable  bool    `json:"is_investable"`
	TotalPenalty  float64 `json:"total_penalty"`
	TotalBoost    float64 `json:"total_boost"`
	NetAdjustment float64 `json:"net_adjustment"`
}

// Triggered returns the triggered results of one rule type.
func (rep *Report) Triggered(t catalog.RuleType) []Result {
	var src []Result
	switch t {
	case catalog.DealBreaker:
		src = rep.DealBreakers
	case catalog.RiskPenalty:
		src = rep.RiskPenalties
	case catalog.QualityBooster:
		src = rep.QualityBoosters
	}
	var out []Result
	for _, r := range src {
		if r.Triggered {
			out = append(out, r)
		}
	}
	return out
}

// Engine evaluates the full rule set. Rule identity, wording and
// impacts come from the catalog; the numeric checks live here.
type Engine struct {
	cat        *catalog.Catalog
	log        *logger.Logger
	boosterCap float64
}

// New returns an Engine. boosterCap limits the total quality boost; a
// non-positive cap means unlimited.
func New(cat *catalog.Catalog, log *logger.Logger, boosterCap float64) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{cat: cat, log: log, boosterCap: boosterCap}
}

// ValidateAll evaluates all 30 rules and returns the report.
func (e *Engine) ValidateAll(r *record.StockRecord) *Report {
	rep := &Report{}
	for i := range e.cat.Rules {
		rule := &e.cat.Rules[i]
		res := e.evaluate(rule, r)
		switch rule.Type {
		case catalog.DealBreaker:
			rep.DealBreakers = append(rep.DealBreakers, res)
		case catalog.RiskPenalty:
			rep.RiskPenalties = append(rep.RiskPenalties, res)
		case catalog.QualityBooster:
			rep.QualityBoosters = append(rep.QualityBoosters, res)
		}
	}

	rep.IsInvestable = len(rep.Triggered(catalog.DealBreaker)) == 0
	for _, res := range rep.Triggered(catalog.RiskPenalty) {
		rep.TotalPenalty += -res.Impact
	}
	for _, res := range rep.Triggered(catalog.QualityBooster) {
		rep.TotalBoost += res.Impact
	}
	if e.boosterCap > 0 && rep.TotalBoost > e.boosterCap {
		rep.TotalBoost = e.boosterCap
	}
	rep.NetAdjustment = rep.TotalBoost - rep.TotalPenalty

	e.log.WithFields(map[string]interface{}{
		"symbol":        r.Symbol,
		"investable":    rep.IsInvestable,
		"total_penalty": rep.TotalPenalty,
		"total_boost":   rep.TotalBoost,
	}).Debug("Validation complete")
	return rep
}

func (e *Engine) evaluate(rule *catalog.RuleDef, r *record.StockRecord) Result {
	res := Result{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Type:     rule.Type,
		Severity: rule.Severity,
	}
	if len(rule.RequiredFields) > 0 {
		res.Field = rule.RequiredFields[0]
	}

	triggered, msg, evaluated := e.check(rule.ID, r)
	if !evaluated {
		res.Informational = true
		res.Message = msg
		return res
	}
	res.Triggered = triggered
	res.Message = msg
	if triggered {
		res.Impact = rule.ScoreImpact
	}
	return res
}

// check runs the numeric test for one rule. evaluated is false when
// the inputs are missing or the history is too shallow.
func (e *Engine) check(id string, r *record.StockRecord) (triggered bool, msg string, evaluated bool) {
	switch id {
	case "D1":
		ic, ok := r.GetFloat("interest_coverage")
		if !ok {
			return false, "interest coverage not available", false
		}
		return ic < 2.0, fmt.Sprintf("interest coverage %.1fx", ic), true

	case "D2":
		inv, ok := r.GetBool("sebi_investigation")
		if !ok {
			return false, "SEBI data not available", false
		}
		if inv {
			return true, "active SEBI investigation", true
		}
		return false, "no SEBI action", true

	case "D3":
		snaps := r.QuarterlyResults
		if len(snaps) < 8 {
			return false, "insufficient quarterly data", false
		}
		declines := yoyDeclineStreak(snaps, "revenue", 4)
		return declines >= 3, fmt.Sprintf("%d quarters of YoY revenue decline", declines), true

	case "D4":
		annual := r.AnnualResults
		if len(annual) < 3 {
			return false, "insufficient annual data", false
		}
		neg := negativeStreak(annual, "operating_cash_flow", 5)
		return neg >= 3, fmt.Sprintf("%d years of negative OCF", neg), true

	case "D5":
		annual := r.AnnualResults
		if len(annual) < 5 {
			return false, "insufficient annual data", false
		}
		neg := negativeStreak(annual, "free_cash_flow", 7)
		return neg >= 5, fmt.Sprintf("%d years of negative FCF", neg), true

	case "D6":
		status, ok := r.GetString("stock_status")
		if !ok {
			return false, "stock status not available", false
		}
		return strings.EqualFold(status, "SUSPENDED"), "stock status: " + status, true

	case "D7":
		pledging, ok := r.GetFloat("promoter_pledging")
		if !ok {
			return false, "pledging data not available", false
		}
		return pledging > 80.0, fmt.Sprintf("promoter pledging %.1f%%", pledging), true

	case "D8":
		de, ok := r.GetFloat("debt_to_equity")
		if !ok {
			return false, "D/E not available", false
		}
		return de > 5.0, fmt.Sprintf("D/E ratio %.2f", de), true

	case "D9":
		rating, ok := r.GetString("credit_rating")
		if !ok {
			return false, "credit rating not available", false
		}
		base := strings.ToUpper(strings.TrimSpace(strings.SplitN(rating, "(", 2)[0]))
		return catalog.BelowInvestmentGrade[base], "credit rating: " + rating, true

	case "D10":
		avgVol, ok := r.GetFloat("avg_volume_20d")
		if !ok {
			return false, "volume data not available", false
		}
		return avgVol < 50000, fmt.Sprintf("avg 20d volume %.0f", avgVol), true

	case "R1":
		de, ok := r.GetFloat("debt_to_equity")
		if !ok {
			return false, "D/E not available", false
		}
		return de > 2.0 && de <= 5.0, fmt.Sprintf("D/E %.2f", de), true

	case "R2":
		ic, ok := r.GetFloat("interest_coverage")
		if !ok {
			return false, "interest coverage not available", false
		}
		return ic >= 2.0 && ic < 3.0, fmt.Sprintf("interest coverage %.1fx", ic), true

	case "R3":
		roe, ok := r.GetFloat("roe")
		if !ok {
			return false, "ROE not available", false
		}
		return roe < 10.0, fmt.Sprintf("ROE %.1f%%", roe), true

	case "R4":
		change, ok := r.GetFloat("promoter_holding_change")
		if !ok {
			return false, "promoter change not available", false
		}
		return change < -5.0, fmt.Sprintf("promoter holding change %+.1f%%", change), true

	case "R5":
		pledging, ok := r.GetFloat("promoter_pledging")
		if !ok {
			return false, "pledging data not available", false
		}
		return pledging > 20.0 && pledging <= 80.0, fmt.Sprintf("promoter pledging %.1f%%", pledging), true

	case "R6":
		dist, ok := r.GetFloat("distance_from_52w_high")
		if !ok {
			return false, "52-week data not available", false
		}
		return dist < -30.0, fmt.Sprintf("distance from 52w high %.1f%%", dist), true

	case "R7":
		snaps := r.QuarterlyResults
		if len(snaps) < 3 {
			return false, "insufficient quarterly data", false
		}
		declines := sequentialDeclineStreak(snaps, "operating_margin", 3)
		return declines >= 2, fmt.Sprintf("%d quarters of declining margin", declines), true

	case "R8":
		pe, ok1 := r.GetFloat("pe_ratio")
		sectorPE, ok2 := r.GetFloat("sector_avg_pe")
		if !ok1 || !ok2 || sectorPE <= 0 {
			return false, "PE or sector PE not available", false
		}
		return pe > 2.0*sectorPE, fmt.Sprintf("PE %.1f vs sector %.1f", pe, sectorPE), true

	case "R9":
		dp, ok := r.GetFloat("delivery_percentage")
		if !ok {
			return false, "delivery data not available", false
		}
		return dp < 30.0, fmt.Sprintf("delivery %.1f%%", dp), true

	case "R10":
		cl, ok1 := r.GetFloat("contingent_liabilities")
		eq, ok2 := r.GetFloat("total_equity")
		if !ok1 || !ok2 || eq <= 0 {
			return false, "contingent liabilities not available", false
		}
		ratio := cl / eq
		return ratio > 0.5, fmt.Sprintf("contingent liabilities %.0f%% of equity", ratio*100), true

	case "Q1":
		annual := r.AnnualResults
		if len(annual) < 5 {
			return false, "insufficient annual data", false
		}
		high := thresholdStreak(annual, "roe", 20.0, 5)
		return high >= 5, fmt.Sprintf("%d/5 years with ROE above 20%%", high), true

	case "Q2":
		annual := r.AnnualResults
		if len(annual) < 4 {
			return false, "insufficient annual data", false
		}
		growth := growthStreak(annual, "revenue", 15.0, 3)
		return growth >= 3, fmt.Sprintf("%d years with revenue growth above 15%%", growth), true

	case "Q3":
		de, ok := r.GetFloat("debt_to_equity")
		if !ok {
			return false, "D/E not available", false
		}
		return de < 0.1, fmt.Sprintf("D/E %.2f", de), true

	case "Q4":
		annual := r.AnnualResults
		if len(annual) < 10 {
			return false, "need 10 years of data", false
		}
		paid := thresholdStreak(annual, "dividends_paid", 0, 10)
		return paid >= 10, fmt.Sprintf("%d/10 years of dividends paid", paid), true

	case "Q5":
		history := r.ShareholdingHistory
		if len(history) < 3 {
			return false, "insufficient shareholding data", false
		}
		increases := sequentialIncreaseStreak(history, "promoter_holding", 4)
		return increases >= 2, fmt.Sprintf("%d quarters of promoter increase", increases), true

	case "Q6":
		change, ok := r.GetFloat("fii_holding_change")
		if !ok {
			return false, "FII change not available", false
		}
		return change > 2.0, fmt.Sprintf("FII holding change %+.1f%%", change), true

	case "Q7":
		margin, ok := r.GetFloat("operating_margin")
		if !ok {
			return false, "margin not available", false
		}
		return margin > 25.0, fmt.Sprintf("operating margin %.1f%%", margin), true

	case "Q8":
		dist, ok := r.GetFloat("distance_from_52w_high")
		if !ok {
			return false, "52-week data not available", false
		}
		return dist > -5.0, fmt.Sprintf("distance from 52w high %.1f%%", dist), true

	case "Q9":
		fcfYield, ok := r.GetFloat("fcf_yield")
		if !ok {
			return false, "FCF yield not available", false
		}
		return fcfYield > 5.0, fmt.Sprintf("FCF yield %.1f%%", fcfYield), true

	case "Q10":
		annual := r.AnnualResults
		if len(annual) < 4 {
			return false, "insufficient annual data", false
		}
		improving := sequentialIncreaseStreak(annual, "current_ratio", 3)
		return improving >= 3, fmt.Sprintf("%d years of improving current ratio", improving), true
	}

	return false, "unknown rule " + id, false
}

// yoyDeclineStreak counts consecutive periods (newest first) where the
// value is below the same period a year earlier.
func yoyDeclineStreak(snaps []record.Snapshot, field string, yearLag int) int {
	streak := 0
	limit := len(snaps) - yearLag
	if limit > yearLag {
		limit = yearLag
	}
	for i := 0; i < limit; i++ {
		curr, ok1 := snaps[i].Value(field)
		prev, ok2 := snaps[i+yearLag].Value(field)
		if !ok1 || !ok2 || prev <= 0 || curr >= prev {
			break
		}
		streak++
	}
	return streak
}

// negativeStreak counts consecutive snapshots (newest first) with a
// negative value, scanning at most maxScan entries.
func negativeStreak(snaps []record.Snapshot, field string, maxScan int) int {
	streak := 0
	for i := 0; i < len(snaps) && i < maxScan; i++ {
		v, ok := snaps[i].Value(field)
		if !ok || v >= 0 {
			break
		}
		streak++
	}
	return streak
}

// thresholdStreak counts consecutive snapshots with a value strictly
// above the threshold.
func thresholdStreak(snaps []record.Snapshot, field string, threshold float64, maxScan int) int {
	streak := 0
	for i := 0; i < len(snaps) && i < maxScan; i++ {
		v, ok := snaps[i].Value(field)
		if !ok || v <= threshold {
			break
		}
		streak++
	}
	return streak
}

// growthStreak counts consecutive period-over-period growth above the
// given percentage.
func growthStreak(snaps []record.Snapshot, field string, minPct float64, maxScan int) int {
	streak := 0
	limit := len(snaps) - 1
	if limit > maxScan {
		limit = maxScan
	}
	for i := 0; i < limit; i++ {
		curr, ok1 := snaps[i].Value(field)
		prev, ok2 := snaps[i+1].Value(field)
		if !ok1 || !ok2 || prev <= 0 {
			break
		}
		if (curr-prev)/prev*100 <= minPct {
			break
		}
		streak++
	}
	return streak
}

// sequentialDeclineStreak counts consecutive period-over-period
// declines starting from the newest snapshot.
func sequentialDeclineStreak(snaps []record.Snapshot, field string, maxScan int) int {
	streak := 0
	limit := len(snaps) - 1
	if limit > maxScan {
		limit = maxScan
	}
	for i := 0; i < limit; i++ {
		curr, ok1 := snaps[i].Value(field)
		prev, ok2 := snaps[i+1].Value(field)
		if !ok1 || !ok2 || curr >= prev {
			break
		}
		streak++
	}
	return streak
}

// sequentialIncreaseStreak counts consecutive period-over-period
// increases starting from the newest snapshot.
func sequentialIncreaseStreak(snaps []record.Snapshot, field string, maxScan int) int {
	streak := 0
	limit := len(snaps) - 1
	if limit > maxScan {
		limit = maxScan
	}
	for i := 0; i < limit; i++ {
		curr, ok1 := snaps[i].Value(field)
		prev, ok2 := snaps[i+1].Value(field)
		if !ok1 || !ok2 || curr <= prev {
			break
		}
		streak++
	}
	return streak
}
