// Package technical computes the technical-indicator fields from a
// record's price history: moving averages, RSI, MACD, Bollinger bands,
// ATR, ADX, OBV and pivot-based support/resistance.
package technical

import (
	"math"

	"github.com/stockpulse/platform/internal/record"
	"github.com/stockpulse/platform/pkg/logger"
)

// minBars is the minimum history depth for any indicator run; below
// it no technical fields are produced at all.
const minBars = 26

// Calculator derives indicator fields from price history.
type Calculator struct {
	log *logger.Logger
}

// New returns a Calculator.
func New(log *logger.Logger) *Calculator {
	if log == nil {
		log = logger.Nop()
	}
	return &Calculator{log: log}
}

// CalculateAll computes every indicator the history depth allows and
// sets them on the record. Returns the names of the fields set.
func (c *Calculator) CalculateAll(r *record.StockRecord) []string {
	h := r.PriceHistory
	if len(h) < minBars {
		return nil
	}

	// History is stored newest first; indicator math wants oldest
	// first.
	n := len(h)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	volumes := make([]int64, n)
	for i, bar := range h {
		j := n - 1 - i
		closes[j] = bar.Close
		highs[j] = bar.High
		lows[j] = bar.Low
		volumes[j] = bar.Volume
	}

	var done []string
	set := func(name string, value interface{}) {
		r.SetCalculated(name, value, []string{"price_history"})
		done = append(done, name)
	}

	for _, p := range []struct {
		period int
		name   string
	}{{20, "sma_20"}, {50, "sma_50"}, {200, "sma_200"}} {
		if v, ok := SMA(closes, p.period); ok {
			set(p.name, round2(v))
		}
	}

	for _, p := range []struct {
		period int
		name   string
	}{{12, "ema_12"}, {26, "ema_26"}} {
		if v, ok := EMA(closes, p.period); ok {
			set(p.name, round2(v))
		}
	}

	if v, ok := RSI(closes, 14); ok {
		set("rsi_14", round2(v))
	}

	macd, signal, macdOK, signalOK := MACD(closes, 12, 26, 9)
	if macdOK {
		set("macd", round4(macd))
	}
	if signalOK {
		set("macd_signal", round4(signal))
	}

	if upper, lower, ok := Bollinger(closes, 20, 2.0); ok {
		set("bollinger_upper", round2(upper))
		set("bollinger_lower", round2(lower))
	}

	if v, ok := ATR(highs, lows, closes, 14); ok {
		set("atr_14", round2(v))
	}

	if v, ok := ADX(highs, lows, closes, 14); ok {
		set("adx_14", round2(v))
	}

	if v, ok := OBV(closes, volumes); ok {
		set("obv", v)
	}

	if support, resistance, ok := SupportResistance(highs, lows, closes); ok {
		set("support_level", round2(support))
		set("resistance_level", round2(resistance))
	}

	c.log.WithFields(map[string]interface{}{
		"symbol":     r.Symbol,
		"bars":       n,
		"indicators": len(done),
	}).Debug("Technical indicators calculated")
	return done
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
