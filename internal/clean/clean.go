// Package clean normalizes extracted values before any calculation
// runs: type coercion, formatting cleanup, bounds capping and NaN
// removal. Extractors also use its coercion helpers directly when
// parsing scraped text.
package clean

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stockpulse/platform/internal/catalog"
	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/logger"
)

// Bounds is the sane range for a numeric field. Values outside it are
// capped, not dropped, so an extraction glitch never poisons a ratio
// downstream.
type Bounds struct {
	Low  float64
	High float64
}

// FieldBounds holds per-field caps for metrics where scraped garbage
// shows up in practice (percent fields above 100, ratios in the
// millions from unit mixups).
var FieldBounds = map[string]Bounds{
	"pe_ratio":            {-1000, 5000},
	"pb_ratio":            {-100, 500},
	"roe":                 {-500, 500},
	"roa":                 {-200, 200},
	"debt_to_equity":      {-10, 100},
	"interest_coverage":   {-100, 1000},
	"current_ratio":       {0, 100},
	"quick_ratio":         {0, 100},
	"operating_margin":    {-200, 100},
	"net_profit_margin":   {-500, 100},
	"gross_margin":        {-100, 100},
	"dividend_yield":      {0, 50},
	"promoter_holding":    {0, 100},
	"promoter_pledging":   {0, 100},
	"fii_holding":         {0, 100},
	"dii_holding":         {0, 100},
	"public_holding":      {0, 100},
	"delivery_percentage": {0, 100},
	"rsi_14":              {0, 100},
	"adx_14":              {0, 100},
}

// Cleaner normalizes a record's fields against the catalog's declared
// types. Run it after extraction and before the calculation engine.
type Cleaner struct {
	cat *catalog.Catalog
	log *logger.Logger
}

// New returns a Cleaner bound to the given catalog.
func New(cat *catalog.Catalog, log *logger.Logger) *Cleaner {
	if log == nil {
		log = logger.Nop()
	}
	return &Cleaner{cat: cat, log: log}
}

// Clean normalizes every populated field in the record in place and
// returns the number of values it modified.
func (c *Cleaner) Clean(r *record.StockRecord) int {
	modified := 0

	for _, category := range catalog.Categories {
		values := r.Category(category)
		for name, original := range values {
			cleaned := c.cleanField(r.Symbol, name, original)
			if !equalValue(original, cleaned) {
				values[name] = cleaned
				modified++
			}
		}
	}

	for i := range r.PriceHistory {
		modified += sanitizeBar(&r.PriceHistory[i])
	}

	return modified
}

// cleanField coerces one value to its catalog type and applies bounds.
func (c *Cleaner) cleanField(symbol, name string, value interface{}) interface{} {
	if value == nil {
		return nil
	}

	fd, ok := c.cat.FieldByName(name)
	if !ok {
		return value
	}

	switch fd.Type {
	case catalog.KindDecimal:
		f, ok := Float(value)
		if !ok {
			return nil
		}
		value = f
	case catalog.KindInteger:
		n, ok := Int(value)
		if !ok {
			return nil
		}
		value = n
	case catalog.KindString, catalog.KindEnum, catalog.KindURL:
		s, ok := String(value)
		if !ok {
			return nil
		}
		value = s
	case catalog.KindBoolean:
		b, ok := Bool(value)
		if !ok {
			return nil
		}
		value = b
	}

	if f, isNum := numeric(value); isNum {
		if b, bounded := FieldBounds[name]; bounded && (f < b.Low || f > b.High) {
			c.log.WithFields(map[string]interface{}{
				"symbol": symbol,
				"field":  name,
				"value":  f,
				"bounds": fmt.Sprintf("[%g, %g]", b.Low, b.High),
			}).Warn("Field value outside bounds, capping")
			capped := math.Max(b.Low, math.Min(b.High, f))
			if _, isInt := value.(int64); isInt {
				value = int64(capped)
			} else {
				value = capped
			}
		}
	}

	return value
}

// sanitizeBar zeroes non-finite prices in a history bar. Returns the
// number of values changed.
func sanitizeBar(bar *record.PriceBar) int {
	changed := 0
	for _, p := range []*float64{
		&bar.Open, &bar.High, &bar.Low, &bar.Close,
		&bar.AdjClose, &bar.DeliveryPct, &bar.Turnover, &bar.PrevClose,
	} {
		if math.IsNaN(*p) || math.IsInf(*p, 0) {
			*p = 0
			changed++
		}
	}
	return changed
}

// Float converts a value to float64, handling the formatting Indian
// market sources emit: thousands separators, currency symbols, percent
// signs and unit suffixes. Returns false for empty or non-numeric
// input and for NaN/Inf.
func Float(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return Float(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.NewReplacer(",", "", "₹", "", "$", "", "%", "", "Cr", "", "Lakh", "").Replace(strings.TrimSpace(v))
		s = strings.TrimSpace(s)
		if s == "" || s == "-" {
			return 0, false
		}
		switch strings.ToLower(s) {
		case "nan", "n/a", "null", "none":
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Int converts a value to int64, tolerating float and formatted-string
// input. Fractions are truncated.
func Int(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case string:
		f, ok := Float(v)
		if !ok {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// String trims and whitespace-normalizes a value. Placeholder strings
// sources use for missing data ("nan", "N/A", "-") report not ok.
func String(value interface{}) (string, bool) {
	if value == nil {
		return "", false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", value))
	if s == "" {
		return "", false
	}
	switch strings.ToLower(s) {
	case "nan", "n/a", "null", "none", "-":
		return "", false
	}
	return strings.Join(strings.Fields(s), " "), true
}

// Bool converts a value to bool. Accepts the yes/no and 0/1 spellings
// regulatory feeds use.
func Bool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1", "y":
			return true, true
		case "false", "no", "0", "n":
			return false, true
		}
		return false, false
	}
	return false, false
}

func numeric(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// equalValue compares scalars without panicking on non-comparable
// originals (slices pass through cleaning untouched).
func equalValue(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a.(type) {
	case float64, float32, int, int64, string, bool:
		return a == b
	}
	// Non-scalar values are never rewritten by cleaning.
	return true
}
