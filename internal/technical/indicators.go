package technical

import "math"

// Indicator functions operate on series ordered oldest to newest and
// return the latest value. All return false when the series is too
// short for the period.

// SMA is the simple moving average of the last period values.
func SMA(prices []float64, period int) (float64, bool) {
	if len(prices) < period {
		return 0, false
	}
	sum := 0.0
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period), true
}

// EMA is the exponential moving average, seeded with the SMA of the
// first period values.
func EMA(prices []float64, period int) (float64, bool) {
	series := emaSeries(prices, period)
	if len(series) == 0 {
		return 0, false
	}
	return series[len(series)-1], true
}

// emaSeries returns the full EMA series, one value per bar from the
// seed point onward.
func emaSeries(prices []float64, period int) []float64 {
	if len(prices) < period {
		return nil
	}
	mult := 2.0 / float64(period+1)
	ema := 0.0
	for _, p := range prices[:period] {
		ema += p
	}
	ema /= float64(period)
	out := make([]float64, 0, len(prices)-period+1)
	out = append(out, ema)
	for _, p := range prices[period:] {
		ema = (p-ema)*mult + ema
		out = append(out, ema)
	}
	return out
}

// RSI is Wilder's relative strength index. An all-gain window returns
// 100.
func RSI(prices []float64, period int) (float64, bool) {
	if len(prices) < period+1 {
		return 0, false
	}
	gains := make([]float64, 0, len(prices)-1)
	losses := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gains = append(gains, math.Max(change, 0))
		losses = append(losses, math.Max(-change, 0))
	}

	avgGain := mean(gains[:period])
	avgLoss := mean(losses[:period])
	for i := period; i < len(gains); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}

// MACD returns the MACD line and its signal line (12/26/9). Needs
// slow+signal bars.
func MACD(prices []float64, fast, slow, signal int) (macd, signalLine float64, macdOK, signalOK bool) {
	if len(prices) < slow+signal {
		return 0, 0, false, false
	}

	emaFast := emaSeries(prices, fast)
	emaSlow := emaSeries(prices, slow)

	// emaSlow starts later; align by the period difference.
	offset := slow - fast
	line := make([]float64, len(emaSlow))
	for i := range emaSlow {
		line[i] = emaFast[i+offset] - emaSlow[i]
	}

	macd = line[len(line)-1]
	sig := emaSeries(line, signal)
	return macd, sig[len(sig)-1], true, true
}

// Bollinger returns the upper and lower bands: SMA(period) plus and
// minus width population standard deviations.
func Bollinger(prices []float64, period int, width float64) (upper, lower float64, ok bool) {
	if len(prices) < period {
		return 0, 0, false
	}
	window := prices[len(prices)-period:]
	sma := mean(window)
	variance := 0.0
	for _, p := range window {
		d := p - sma
		variance += d * d
	}
	sd := math.Sqrt(variance / float64(period))
	return sma + width*sd, sma - width*sd, true
}

// ATR is Wilder's average true range.
func ATR(highs, lows, closes []float64, period int) (float64, bool) {
	if len(closes) < period+1 {
		return 0, false
	}
	trs := trueRanges(highs, lows, closes)
	atr := mean(trs[:period])
	for _, tr := range trs[period:] {
		atr = (atr*float64(period-1) + tr) / float64(period)
	}
	return atr, true
}

// ADX is Wilder's average directional index. Needs 2*period+1 bars.
func ADX(highs, lows, closes []float64, period int) (float64, bool) {
	n := len(closes)
	if n < 2*period+1 {
		return 0, false
	}

	plusDM := make([]float64, 0, n-1)
	minusDM := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM = append(plusDM, up)
		} else {
			plusDM = append(plusDM, 0)
		}
		if down > up && down > 0 {
			minusDM = append(minusDM, down)
		} else {
			minusDM = append(minusDM, 0)
		}
	}
	trs := trueRanges(highs, lows, closes)

	atr := mean(trs[:period])
	plusS := mean(plusDM[:period])
	minusS := mean(minusDM[:period])

	var dxs []float64
	for i := period; i < len(trs); i++ {
		atr = (atr*float64(period-1) + trs[i]) / float64(period)
		plusS = (plusS*float64(period-1) + plusDM[i]) / float64(period)
		minusS = (minusS*float64(period-1) + minusDM[i]) / float64(period)

		var plusDI, minusDI float64
		if atr > 0 {
			plusDI = plusS / atr * 100
			minusDI = minusS / atr * 100
		}
		if sum := plusDI + minusDI; sum > 0 {
			dxs = append(dxs, math.Abs(plusDI-minusDI)/sum*100)
		}
	}

	if len(dxs) < period {
		return 0, false
	}
	adx := mean(dxs[:period])
	for _, dx := range dxs[period:] {
		adx = (adx*float64(period-1) + dx) / float64(period)
	}
	return adx, true
}

// OBV is the cumulative on-balance volume over the whole series.
func OBV(closes []float64, volumes []int64) (int64, bool) {
	if len(closes) < 2 || len(volumes) < 2 {
		return 0, false
	}
	var obv int64
	for i := 1; i < len(closes) && i < len(volumes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += volumes[i]
		case closes[i] < closes[i-1]:
			obv -= volumes[i]
		}
	}
	return obv, true
}

// SupportResistance estimates levels from the classic pivot-point
// formula over the last 20 bars.
func SupportResistance(highs, lows, closes []float64) (support, resistance float64, ok bool) {
	const window = 20
	if len(closes) < window {
		return 0, 0, false
	}
	maxHigh := math.Inf(-1)
	for _, h := range highs[len(highs)-window:] {
		maxHigh = math.Max(maxHigh, h)
	}
	minLow := math.Inf(1)
	for _, l := range lows[len(lows)-window:] {
		minLow = math.Min(minLow, l)
	}
	lastClose := closes[len(closes)-1]

	pivot := (maxHigh + minLow + lastClose) / 3
	return 2*pivot - maxHigh, 2*pivot - minLow, true
}

func trueRanges(highs, lows, closes []float64) []float64 {
	trs := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		tr := math.Max(highs[i]-lows[i],
			math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
		trs = append(trs, tr)
	}
	return trs
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
