// Package quality computes the confidence score of a stock record:
// weighted field completeness, freshness against each field's expected
// cadence, cross-source agreement and validation outcome.
package quality

import (
	"math"
	"time"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/internal/validate"
	"github.com/stockpulse/platform/pkg/logger"
)

// Component weights of the overall confidence score.
const (
	completenessWeight    = 0.40
	freshnessWeight       = 0.30
	sourceAgreementWeight = 0.15
	validationWeight      = 0.15
)

// Per-priority weights for completeness. Metadata fields are excluded
// entirely.
var priorityWeights = map[catalog.Priority]float64{
	catalog.Critical:    2.0,
	catalog.Important:   1.5,
	catalog.Standard:    1.0,
	catalog.Optional:    0.5,
	catalog.Qualitative: 0.5,
}

// freshnessThresholds is the age at which a field of each cadence
// starts decaying. Beyond twice the threshold it counts as stale.
var freshnessThresholds = map[catalog.Frequency]time.Duration{
	catalog.Daily:      48 * time.Hour,
	catalog.Weekly:     10 * 24 * time.Hour,
	catalog.Quarterly:  120 * 24 * time.Hour,
	catalog.Annual:     400 * 24 * time.Hour,
	catalog.OnEvent:    90 * 24 * time.Hour,
	catalog.RealTime:   6 * time.Hour,
	catalog.Continuous: time.Hour,
	catalog.Never:      36500 * 24 * time.Hour,
}

const defaultThreshold = 30 * 24 * time.Hour

// Report is the quality assessment of one record.
type Report struct {
	Symbol      string    `json:"symbol"`
	GeneratedAt time.Time `json:"generated_at"`

	CompletenessScore    float64 `json:"completeness_score"`
	FreshnessScore       float64 `json:"freshness_score"`
	SourceAgreementScore float64 `json:"source_agreement_score"`
	ValidationScore      float64 `json:"validation_score"`
	OverallConfidence    float64 `json:"overall_confidence"`

	MissingCriticalFields   []string           `json:"missing_critical_fields"`
	StaleFields             []string           `json:"stale_fields"`
	FieldCoverageByCategory map[string]float64 `json:"field_coverage_by_category"`
}

// Level buckets the overall confidence: high (>=90), medium (>=70),
// low (>=50), very_low below that.
func (rep *Report) Level() string {
	switch {
	case rep.OverallConfidence >= 90:
		return "high"
	case rep.OverallConfidence >= 70:
		return "medium"
	case rep.OverallConfidence >= 50:
		return "low"
	default:
		return "very_low"
	}
}

// Scorer computes quality reports.
type Scorer struct {
	cat *catalog.Catalog
	log *logger.Logger
	now func() time.Time
}

// New returns a Scorer.
func New(cat *catalog.Catalog, log *logger.Logger) *Scorer {
	if log == nil {
		log = logger.Nop()
	}
	return &Scorer{cat: cat, log: log, now: time.Now}
}

// Score computes the full quality report. vrep may be nil when the
// record has not been validated; validation then scores neutral.
func (s *Scorer) Score(r *record.StockRecord, vrep *validate.Report) *Report {
	rep := &Report{
		Symbol:      r.Symbol,
		GeneratedAt: s.now().UTC(),
	}

	rep.CompletenessScore = s.scoreCompleteness(r, rep)
	rep.FreshnessScore = s.scoreFreshness(r, rep)
	rep.SourceAgreementScore = s.scoreSourceAgreement(r)
	rep.ValidationScore = s.scoreValidation(vrep)

	rep.OverallConfidence = round1(
		rep.CompletenessScore*completenessWeight +
			rep.FreshnessScore*freshnessWeight +
			rep.SourceAgreementScore*sourceAgreementWeight +
			rep.ValidationScore*validationWeight)

	rep.FieldCoverageByCategory = s.categoryCoverage(r)

	s.log.WithFields(map[string]interface{}{
		"symbol":     r.Symbol,
		"confidence": rep.OverallConfidence,
		"level":      rep.Level(),
	}).Debug("Quality report generated")
	return rep
}

// scoreCompleteness weighs populated fields by priority and records
// which critical fields are missing.
func (s *Scorer) scoreCompleteness(r *record.StockRecord, rep *Report) float64 {
	var totalWeight, populatedWeight float64

	for i := range s.cat.Fields {
		fd := &s.cat.Fields[i]
		if fd.Priority == catalog.Metadata {
			continue
		}
		weight, ok := priorityWeights[fd.Priority]
		if !ok {
			weight = 1.0
		}
		totalWeight += weight

		if r.Has(fd.Name) {
			populatedWeight += weight
		} else if fd.Priority == catalog.Critical {
			rep.MissingCriticalFields = append(rep.MissingCriticalFields, fd.Name)
		}
	}

	if totalWeight == 0 {
		return 0
	}
	return round1(populatedWeight / totalWeight * 100)
}

// scoreFreshness scores each populated field against its cadence
// threshold: full marks within the threshold, linear decay to 50 by
// twice the threshold, then down toward zero.
func (s *Scorer) scoreFreshness(r *record.StockRecord, rep *Report) float64 {
	now := s.now().UTC()
	count := 0
	sum := 0.0

	for i := range s.cat.Fields {
		fd := &s.cat.Fields[i]
		if fd.Priority == catalog.Metadata || fd.Priority == catalog.Qualitative {
			continue
		}
		updated, ok := r.FieldLastUpdated[fd.Name]
		if !ok {
			continue
		}

		count++
		threshold, ok := freshnessThresholds[fd.Frequency]
		if !ok {
			threshold = defaultThreshold
		}

		age := now.Sub(updated)
		switch {
		case age <= threshold:
			sum += 100
		case age <= 2*threshold:
			ratio := float64(age-threshold) / float64(threshold)
			sum += math.Max(50, 100-50*ratio)
		default:
			sum += math.Max(0, 50-(float64(age)/float64(threshold)-2)*25)
			rep.StaleFields = append(rep.StaleFields, fd.Name)
		}
	}

	if count == 0 {
		return 0
	}
	return round1(sum / float64(count))
}

// scoreSourceAgreement scores fields observed by multiple sources.
// With no multi-source data the score is a neutral 50.
func (s *Scorer) scoreSourceAgreement(r *record.StockRecord) float64 {
	total := 0
	agreed := 0.0
	for _, msv := range r.MultiSource {
		if len(msv.Values) < 2 {
			continue
		}
		total++
		switch {
		case msv.AgreementScore > 0.95:
			agreed++
		case msv.AgreementScore > 0.80:
			agreed += 0.5
		}
	}
	if total == 0 {
		return 50
	}
	return round1(agreed / float64(total) * 100)
}

// scoreValidation maps the validation report to a score: a triggered
// deal-breaker pins it at 30; otherwise base 70 minus 5 per penalty
// plus 3 per boost, clamped to 0..100. No report scores neutral 50.
func (s *Scorer) scoreValidation(vrep *validate.Report) float64 {
	if vrep == nil {
		return 50
	}
	if !vrep.IsInvestable {
		return 30
	}
	penalties := len(vrep.Triggered(catalog.RiskPenalty))
	boosts := len(vrep.Triggered(catalog.QualityBooster))
	score := 70 - float64(penalties)*5 + float64(boosts)*3
	return math.Max(0, math.Min(100, score))
}

func (s *Scorer) categoryCoverage(r *record.StockRecord) map[string]float64 {
	coverage := make(map[string]float64, len(catalog.Categories))
	for _, c := range catalog.Categories {
		fields := s.cat.FieldsByCategory(c)
		if len(fields) == 0 {
			coverage[string(c)] = 0
			continue
		}
		available := 0
		for _, fd := range fields {
			if r.Has(fd.Name) {
				available++
			}
		}
		coverage[string(c)] = round1(float64(available) / float64(len(fields)) * 100)
	}
	return coverage
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
