// Package record defines the per-security entity record: category
// field maps, availability and freshness metadata, multi-source
// observations and time-series snapshots.
package record

import (
	"math"
	"time"

	"github.com/stockpulse/platform/internal/catalog"
)

// StockRecord is the complete data record for a single security.
// Fields live in per-category maps; metadata tracks availability,
// freshness and cross-source observations for every field.
type StockRecord struct {
	Symbol      string
	CompanyName string
	LastUpdated time.Time

	categories map[catalog.Category]map[string]interface{}

	FieldAvailability map[string]bool
	FieldLastUpdated  map[string]time.Time
	MultiSource       map[string]*MultiSourceValue
	CalcInputs        map[string][]string

	ExtractionHistory []ExtractionAttempt

	// Time series, newest first.
	PriceHistory        []PriceBar
	QuarterlyResults    []Snapshot
	AnnualResults       []Snapshot
	ShareholdingHistory []Snapshot

	cat *catalog.Catalog
	now func() time.Time
}

// New creates an empty record bound to the catalog.
func New(cat *catalog.Catalog, symbol, companyName string) *StockRecord {
	r := &StockRecord{
		Symbol:            symbol,
		CompanyName:       companyName,
		categories:        make(map[catalog.Category]map[string]interface{}, len(catalog.Categories)),
		FieldAvailability: make(map[string]bool),
		FieldLastUpdated:  make(map[string]time.Time),
		MultiSource:       make(map[string]*MultiSourceValue),
		CalcInputs:        make(map[string][]string),
		cat:               cat,
		now:               time.Now,
	}
	for _, c := range catalog.Categories {
		r.categories[c] = make(map[string]interface{})
	}
	return r
}

// SetField stores a value in its category map and stamps metadata.
// Unknown field names are ignored.
func (r *StockRecord) SetField(name string, value interface{}, source catalog.Source) {
	fd, ok := r.cat.FieldByName(name)
	if !ok {
		return
	}
	now := r.now().UTC()
	r.categories[fd.Category][name] = value
	r.FieldAvailability[name] = true
	r.FieldLastUpdated[name] = now
	r.LastUpdated = now
}

// SetCalculated stores a derived value and records its input fields.
func (r *StockRecord) SetCalculated(name string, value interface{}, inputs []string) {
	r.SetField(name, value, catalog.SrcCalculated)
	r.CalcInputs[name] = inputs
}

// SetMulti records one source's observation of a field, stores the
// latest observation as the field value, and recomputes the numeric
// agreement score across all observations.
func (r *StockRecord) SetMulti(name string, value interface{}, source catalog.Source) {
	msv, ok := r.MultiSource[name]
	if !ok {
		msv = &MultiSourceValue{
			FieldName:  name,
			Values:     make(map[catalog.Source]interface{}),
			Timestamps: make(map[catalog.Source]time.Time),
		}
		r.MultiSource[name] = msv
	}
	msv.Values[source] = value
	msv.Timestamps[source] = r.now().UTC()
	msv.AgreedValue = value
	msv.AgreementScore = numericAgreement(msv.Values)

	r.SetField(name, value, source)
}

// GetField returns a field value from its category map.
func (r *StockRecord) GetField(name string) (interface{}, bool) {
	fd, ok := r.cat.FieldByName(name)
	if !ok {
		return nil, false
	}
	v, ok := r.categories[fd.Category][name]
	return v, ok
}

// GetFloat returns a numeric field value. Integers widen to float64.
func (r *StockRecord) GetFloat(name string) (float64, bool) {
	v, ok := r.GetField(name)
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

// GetString returns a string field value.
func (r *StockRecord) GetString(name string) (string, bool) {
	v, ok := r.GetField(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetBool returns a boolean field value.
func (r *StockRecord) GetBool(name string) (bool, bool) {
	v, ok := r.GetField(name)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Category returns the raw map for one category.
func (r *StockRecord) Category(cat catalog.Category) map[string]interface{} {
	return r.categories[cat]
}

// Has reports whether the field currently has a value.
func (r *StockRecord) Has(name string) bool {
	return r.FieldAvailability[name]
}

// Completeness is the percentage of catalog fields with a value.
func (r *StockRecord) Completeness() float64 {
	total := r.cat.TotalFields()
	if total == 0 {
		return 0
	}
	available := 0
	for _, ok := range r.FieldAvailability {
		if ok {
			available++
		}
	}
	return float64(available) / float64(total) * 100.0
}

// RecordAttempt appends one extraction attempt to the history.
func (r *StockRecord) RecordAttempt(a ExtractionAttempt) {
	r.ExtractionHistory = append(r.ExtractionHistory, a)
}

// Document projects the record into a flat map for JSONB persistence.
func (r *StockRecord) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"symbol":       r.Symbol,
		"company_name": r.CompanyName,
		"last_updated": r.LastUpdated,
	}
	for _, c := range catalog.Categories {
		doc[string(c)] = r.categories[c]
	}
	doc["field_availability"] = r.FieldAvailability
	doc["field_last_updated"] = r.FieldLastUpdated
	doc["multi_source_values"] = r.MultiSource
	doc["price_history"] = r.PriceHistory
	doc["quarterly_results"] = r.QuarterlyResults
	doc["annual_results"] = r.AnnualResults
	doc["shareholding_history"] = r.ShareholdingHistory
	return doc
}

// numericAgreement scores how closely numeric observations agree:
// 1.0 when identical, min/max ratio when same-signed, 0 otherwise.
// Non-numeric observations score 1.0 only on exact equality.
func numericAgreement(values map[catalog.Source]interface{}) float64 {
	if len(values) < 2 {
		return 1.0
	}

	nums := make([]float64, 0, len(values))
	allNumeric := true
	for _, v := range values {
		f, ok := asFloat(v)
		if !ok {
			allNumeric = false
			break
		}
		nums = append(nums, f)
	}

	if !allNumeric {
		var first interface{}
		i := 0
		for _, v := range values {
			if i == 0 {
				first = v
			} else if v != first {
				return 0
			}
			i++
		}
		return 1.0
	}

	minV, maxV := nums[0], nums[0]
	for _, n := range nums[1:] {
		if n < minV {
			minV = n
		}
		if n > maxV {
			maxV = n
		}
	}
	if minV == maxV {
		return 1.0
	}
	if minV*maxV <= 0 {
		return 0
	}
	return math.Abs(minV) / math.Abs(maxV)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
