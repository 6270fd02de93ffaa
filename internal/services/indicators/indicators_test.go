package indicators

import (
	"math"
	"testing"
	"time"

	"Elysian/internal/domain/models"
)

func mkBars(closes []float64) []models.Bar {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Timestamp: base.AddDate(0, 0, i),
			Symbol:    "TEST",
			Open:      c,
			High:      c,
			Low:       c,
			Close:     c,
			Volume:    1000,
		}
	}
	return bars
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMAKnownValues(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Fatalf("head positions should be NaN, got %v", got[:2])
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if !almostEqual(got[i+2], w) {
			t.Fatalf("sma[%d] = %v, want %v", i+2, got[i+2], w)
		}
	}
}

func TestSMAShortInput(t *testing.T) {
	got := SMA([]float64{1, 2}, 5)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Fatalf("sma[%d] = %v, want NaN", i, v)
		}
	}
}

func TestEWMSeedAndRecursion(t *testing.T) {
	// span=3 -> alpha=0.5
	got := EWM([]float64{2, 4, 4}, 3)
	if !almostEqual(got[0], 2) {
		t.Fatalf("ewm seed = %v, want first observation", got[0])
	}
	if !almostEqual(got[1], 3) {
		t.Fatalf("ewm[1] = %v, want 3", got[1])
	}
	if !almostEqual(got[2], 3.5) {
		t.Fatalf("ewm[2] = %v, want 3.5", got[2])
	}
}

func TestRSIMonotonicUp(t *testing.T) {
	xs := make([]float64, 30)
	for i := range xs {
		xs[i] = 100 + float64(i)
	}
	got := RSI(xs, 14)
	for i := 14; i < len(got); i++ {
		if !almostEqual(got[i], 100) {
			t.Fatalf("rsi[%d] = %v, want 100 on all-gain series", i, got[i])
		}
	}
}

func TestRSIMonotonicDown(t *testing.T) {
	xs := make([]float64, 30)
	for i := range xs {
		xs[i] = 100 - float64(i)
	}
	got := RSI(xs, 14)
	for i := 14; i < len(got); i++ {
		if !almostEqual(got[i], 0) {
			t.Fatalf("rsi[%d] = %v, want 0 on all-loss series", i, got[i])
		}
	}
}

func TestRSIFlatAndHead(t *testing.T) {
	xs := make([]float64, 30)
	for i := range xs {
		xs[i] = 100
	}
	got := RSI(xs, 14)
	for i, v := range got {
		if !almostEqual(v, 50) {
			t.Fatalf("rsi[%d] = %v, want neutral 50", i, v)
		}
	}
}

func TestRollingStdSample(t *testing.T) {
	got := RollingStd([]float64{1, 2, 3}, 3)
	// sample std (ddof=1) of {1,2,3} is 1
	if !almostEqual(got[2], 1) {
		t.Fatalf("std = %v, want 1", got[2])
	}
}

func TestPctChangeZeroReference(t *testing.T) {
	got := PctChange([]float64{0, 5, 10}, 1)
	if !math.IsNaN(got[1]) {
		t.Fatalf("pct change with zero reference should be NaN, got %v", got[1])
	}
	if !almostEqual(got[2], 1) {
		t.Fatalf("pct change = %v, want 1", got[2])
	}
}

func TestRollingVolatilityFlat(t *testing.T) {
	xs := make([]float64, 41)
	for i := range xs {
		xs[i] = 100
	}
	got := RollingVolatility(xs, 20)
	for i := 0; i < 20; i++ {
		if !math.IsNaN(got[i]) {
			t.Fatalf("vol[%d] = %v, want NaN before a full return window", i, got[i])
		}
	}
	for i := 20; i < len(got); i++ {
		if !almostEqual(got[i], 0) {
			t.Fatalf("vol[%d] = %v, want 0 on flat series", i, got[i])
		}
	}
}

func TestRollingVolatilityTooShort(t *testing.T) {
	xs := make([]float64, 20)
	for i := range xs {
		xs[i] = 100 + float64(i)
	}
	got := RollingVolatility(xs, 20)
	for i, v := range got {
		if !math.IsNaN(v) {
			t.Fatalf("vol[%d] = %v, want NaN with only %d closes", i, v, len(xs))
		}
	}
}

func TestComputeAlignment(t *testing.T) {
	bars := mkBars([]float64{100, 101, 102, 103, 104, 105})
	snaps := Compute(bars)
	if len(snaps) != len(bars) {
		t.Fatalf("got %d snapshots for %d bars", len(snaps), len(bars))
	}
	if got := Compute(nil); len(got) != 0 {
		t.Fatalf("empty input should yield empty output, got %d", len(got))
	}
}

func TestComputeFlatBBPercent(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	snaps := Compute(mkBars(closes))
	last := snaps[len(snaps)-1]
	if !almostEqual(last.BBUpper, last.BBLower) {
		t.Fatalf("flat series should collapse the bands: %v vs %v", last.BBUpper, last.BBLower)
	}
	if !math.IsNaN(last.BBPercent) {
		t.Fatalf("zero-width bands should give NaN %%B, got %v", last.BBPercent)
	}
}

func TestComputeDeterministic(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 105, 104, 106, 108, 107, 109,
		111, 110, 112, 114, 113, 115, 117, 116, 118, 120,
		119, 121, 123, 122, 124}
	bars := mkBars(closes)
	a := Compute(bars)
	b := Compute(bars)
	for i := range a {
		if a[i] != b[i] && !(snapHasNaN(a[i]) && snapHasNaN(b[i]) && snapEqualNaN(a[i], b[i])) {
			t.Fatalf("snapshot %d differs between identical runs", i)
		}
	}
}

func snapHasNaN(s models.IndicatorSnapshot) bool {
	for _, v := range snapValues(s) {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func snapEqualNaN(a, b models.IndicatorSnapshot) bool {
	av, bv := snapValues(a), snapValues(b)
	for i := range av {
		if math.IsNaN(av[i]) && math.IsNaN(bv[i]) {
			continue
		}
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

func snapValues(s models.IndicatorSnapshot) []float64 {
	return []float64{
		s.SMA5, s.SMA20, s.SMA50, s.EMA12, s.EMA26, s.RSI,
		s.MACD, s.MACDSignal, s.MACDHistogram,
		s.BBUpper, s.BBMiddle, s.BBLower, s.BBPercent,
		s.Volatility, s.PriceChange, s.PriceChange5,
	}
}
