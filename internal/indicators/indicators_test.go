package indicators

import (
	"math"
	"testing"
)

func almost(t *testing.T, got, want, eps float64, label string) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %f, want %f", label, got, want)
	}
}

func TestEMAConstantSeries(t *testing.T) {
	prices := []float64{5, 5, 5, 5, 5, 5, 5, 5}
	almost(t, EMA(prices, 3), 5, 1e-9, "EMA")
}

func TestEMAFollowsTrend(t *testing.T) {
	up := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ema := EMA(up, 3)
	if ema <= 5 || ema >= 10 {
		t.Errorf("EMA of rising series = %f, want between mid and last", ema)
	}
}

func TestSMA(t *testing.T) {
	almost(t, SMA([]float64{1, 2, 3, 4}, 2), 3.5, 1e-9, "SMA last 2")
	almost(t, SMA([]float64{1, 2}, 10), 1.5, 1e-9, "SMA short series")
	almost(t, SMA(nil, 3), 0, 1e-9, "SMA empty")
}

func TestMACDDiffSign(t *testing.T) {
	// A flat series then a strong rally: fast EMA above slow, positive histogram.
	rally := make([]float64, 60)
	for i := range rally {
		if i < 40 {
			rally[i] = 100
		} else {
			rally[i] = 100 + float64(i-40)*2
		}
	}
	if d := MACDDiff(rally); d <= 0 {
		t.Errorf("MACD histogram on rally = %f, want > 0", d)
	}

	// Mirror image: a sell-off drives the histogram negative.
	selloff := make([]float64, 60)
	for i := range selloff {
		if i < 40 {
			selloff[i] = 100
		} else {
			selloff[i] = 100 - float64(i-40)*2
		}
	}
	if d := MACDDiff(selloff); d >= 0 {
		t.Errorf("MACD histogram on sell-off = %f, want < 0", d)
	}
}

func TestMACDSeriesAlignment(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	macd, signal, hist := MACDSeries(prices, 2, 3, 2)
	if len(macd) != 5 || len(signal) != 5 || len(hist) != 5 {
		t.Fatalf("series misaligned: %d/%d/%d", len(macd), len(signal), len(hist))
	}
	for i := range prices {
		almost(t, hist[i], macd[i]-signal[i], 1e-9, "hist")
	}
}

func TestOBV(t *testing.T) {
	closes := []float64{10, 11, 11, 9, 12}
	volumes := []float64{100, 200, 300, 400, 500}

	obv := OBVSeries(closes, volumes)
	want := []float64{0, 200, 200, -200, 300}
	for i := range want {
		almost(t, obv[i], want[i], 1e-9, "OBV")
	}

	almost(t, OBVDiff(closes, volumes), 500, 1e-9, "OBVDiff")
}

func TestOBVDiffShortSeries(t *testing.T) {
	almost(t, OBVDiff([]float64{1}, []float64{1}), 0, 1e-9, "OBVDiff single")
	almost(t, OBVDiff(nil, nil), 0, 1e-9, "OBVDiff empty")
}
