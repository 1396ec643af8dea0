// Package indicators implements the technical indicators the trend bot
// trades on. All series are oldest-first float64 slices.
package indicators

// EMASeries returns the exponential moving average at every index. The
// warmup region (first period-1 values) is seeded with the simple
// average so late values converge quickly.
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	if period < 1 {
		period = 1
	}

	multiplier := 2.0 / float64(period+1)
	ema := values[0]
	for i, v := range values {
		if i == 0 {
			out[0] = ema
			continue
		}
		ema = (v-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}

// EMA returns the exponential moving average of the final value.
func EMA(values []float64, period int) float64 {
	s := EMASeries(values, period)
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// SMA calculates the simple moving average over the last period values.
func SMA(values []float64, period int) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) < period {
		period = len(values)
	}
	return average(values[len(values)-period:])
}

// MACDSeries returns the MACD line (fast EMA − slow EMA), the signal
// line (EMA of the MACD line) and the histogram, index-aligned with the
// input.
func MACDSeries(prices []float64, fastPeriod, slowPeriod, signalPeriod int) (macd, signal, hist []float64) {
	fast := EMASeries(prices, fastPeriod)
	slow := EMASeries(prices, slowPeriod)

	macd = make([]float64, len(prices))
	for i := range prices {
		macd[i] = fast[i] - slow[i]
	}

	signal = EMASeries(macd, signalPeriod)

	hist = make([]float64, len(prices))
	for i := range prices {
		hist[i] = macd[i] - signal[i]
	}
	return macd, signal, hist
}

// MACDDiff returns the final MACD histogram value with the standard
// 12/26/9 periods.
func MACDDiff(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	_, _, hist := MACDSeries(prices, 12, 26, 9)
	return hist[len(hist)-1]
}

// OBVSeries computes on-balance volume: cumulative volume signed by the
// direction of each close-to-close move.
func OBVSeries(closes, volumes []float64) []float64 {
	n := len(closes)
	if len(volumes) < n {
		n = len(volumes)
	}
	out := make([]float64, n)
	if n == 0 {
		return out
	}

	obv := 0.0
	out[0] = 0
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv += volumes[i]
		case closes[i] < closes[i-1]:
			obv -= volumes[i]
		}
		out[i] = obv
	}
	return out
}

// OBVDiff returns the final change in on-balance volume, the "is volume
// confirming the move" check. Zero when fewer than two candles.
func OBVDiff(closes, volumes []float64) float64 {
	s := OBVSeries(closes, volumes)
	if len(s) < 2 {
		return 0
	}
	return s[len(s)-1] - s[len(s)-2]
}

func average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
