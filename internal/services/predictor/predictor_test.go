package predictor

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
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    1000,
		}
	}
	return bars
}

func flat(price float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = price
	}
	return xs
}

func trend(start, step float64, n int) []float64 {
	xs := make([]float64, n)
	price := start
	for i := range xs {
		xs[i] = price
		price *= 1 + step
	}
	return xs
}

func TestDirectionShortInputIsNeutral(t *testing.T) {
	p := New(nil)
	for _, n := range []int{0, 1, 5, 19} {
		bars := mkBars(trend(100, 0.01, n))
		if got := p.PredictDirection(bars); got != 0.5 {
			t.Fatalf("%d bars: direction = %v, want exactly 0.5", n, got)
		}
	}
}

func TestVolatilityShortInputIsDefault(t *testing.T) {
	p := New(nil)
	for _, n := range []int{0, 1, 5, 19} {
		bars := mkBars(trend(100, 0.01, n))
		if got := p.PredictVolatility(bars); got != 0.2 {
			t.Fatalf("%d bars: volatility = %v, want exactly 0.2", n, got)
		}
	}
}

func TestDirectionFlatIsNeutral(t *testing.T) {
	p := New(nil)
	if got := p.PredictDirection(mkBars(flat(100, 20))); got != 0.5 {
		t.Fatalf("flat series direction = %v, want 0.5", got)
	}
	if got := p.PredictDirection(mkBars(flat(100, 40))); got != 0.5 {
		t.Fatalf("flat series direction = %v, want 0.5", got)
	}
}

func TestDirectionFollowsTrend(t *testing.T) {
	p := New(nil)
	up := p.PredictDirection(mkBars(trend(100, 0.01, 60)))
	down := p.PredictDirection(mkBars(trend(100, -0.01, 60)))
	if up <= 0.5 {
		t.Fatalf("uptrend direction = %v, want > 0.5", up)
	}
	if down >= 0.5 {
		t.Fatalf("downtrend direction = %v, want < 0.5", down)
	}
}

func TestDirectionBounds(t *testing.T) {
	p := New(nil)
	series := [][]float64{
		trend(100, 0.20, 60),
		trend(1000, -0.20, 60),
		alternating(100, 3.0, 60),
		trend(0.0001, 0.5, 60),
	}
	for i, s := range series {
		got := p.PredictDirection(mkBars(s))
		if got < 0.1 || got > 0.9 {
			t.Fatalf("series %d: direction = %v outside [0.1, 0.9]", i, got)
		}
		if math.IsNaN(got) {
			t.Fatalf("series %d: direction is NaN", i)
		}
	}
}

func alternating(base, factor float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		if i%2 == 0 {
			xs[i] = base
		} else {
			xs[i] = base * factor
		}
	}
	return xs
}

func TestVolatilityClampedHigh(t *testing.T) {
	p := New(nil)
	// Violent alternating swings annualize far above the cap.
	got := p.PredictVolatility(mkBars(alternating(100, 2.0, 60)))
	if got != 1.0 {
		t.Fatalf("volatility = %v, want clamp at 1.0", got)
	}
}

func TestVolatilityClampedLow(t *testing.T) {
	p := New(nil)
	// Long flat history has defined zero volatility, clamped up to the floor.
	got := p.PredictVolatility(mkBars(flat(100, 40)))
	if got != 0.05 {
		t.Fatalf("volatility = %v, want clamp at 0.05", got)
	}
}

func TestVolatilityNoDefinedWindowUsesDefault(t *testing.T) {
	p := New(nil)
	// Exactly 20 bars passes the minimum but yields no full return window.
	got := p.PredictVolatility(mkBars(flat(100, 20)))
	if got != 0.2 {
		t.Fatalf("volatility = %v, want default 0.2", got)
	}
}

func TestInvalidClosesFallBackToNeutral(t *testing.T) {
	p := New(nil)
	closes := trend(100, 0.01, 30)
	closes[10] = math.NaN()
	bars := mkBars(closes)
	if got := p.PredictDirection(bars); got != 0.5 {
		t.Fatalf("direction = %v, want neutral 0.5 on invalid input", got)
	}
	if got := p.PredictVolatility(bars); got != 0.2 {
		t.Fatalf("volatility = %v, want default 0.2 on invalid input", got)
	}
}

func TestConfidenceSteps(t *testing.T) {
	p := New(nil)
	cases := []struct {
		quality float64
		want    float64
	}{
		{0.85, 0.75},
		{0.81, 0.75},
		{0.8, 0.65},
		{0.7, 0.65},
		{0.61, 0.65},
		{0.6, 0.55},
		{0.5, 0.55},
		{0.41, 0.55},
		{0.4, 0.45},
		{0.1, 0.45},
		{0, 0.45},
	}
	for _, c := range cases {
		if got := p.Confidence(c.quality); got != c.want {
			t.Fatalf("confidence(%v) = %v, want %v", c.quality, got, c.want)
		}
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	p := New(nil)
	in := map[string][]models.Bar{
		"GOOD1": mkBars(trend(100, 0.01, 60)),
		"BAD":   {},
		"GOOD2": mkBars(trend(200, -0.01, 60)),
	}
	out := p.BatchPredict(in, 0.7)
	if len(out) != 3 {
		t.Fatalf("got %d results, want one per requested symbol", len(out))
	}
	if out["BAD"] != nil {
		t.Fatalf("empty sequence should be unavailable, got %+v", out["BAD"])
	}
	for _, sym := range []string{"GOOD1", "GOOD2"} {
		pred := out[sym]
		if pred == nil {
			t.Fatalf("%s should have a prediction", sym)
		}
		if pred.Symbol != sym {
			t.Fatalf("prediction tagged %q, want %q", pred.Symbol, sym)
		}
		if pred.Confidence != 0.65 {
			t.Fatalf("%s confidence = %v, want 0.65 at quality 0.7", sym, pred.Confidence)
		}
	}
}

func TestBatchInvalidClosesUnavailable(t *testing.T) {
	p := New(nil)
	closes := trend(100, 0.01, 30)
	closes[5] = -1
	out := p.BatchPredict(map[string][]models.Bar{"X": mkBars(closes)}, 0.7)
	if out["X"] != nil {
		t.Fatalf("non-positive close should make the symbol unavailable")
	}
}

func TestBatchNegativeQualityUsesDefault(t *testing.T) {
	p := New(nil)
	out := p.BatchPredict(map[string][]models.Bar{"X": mkBars(trend(100, 0.01, 60))}, -1)
	if out["X"].Confidence != 0.65 {
		t.Fatalf("confidence = %v, want 0.65 from default quality 0.7", out["X"].Confidence)
	}
}

func TestScoringDeterministic(t *testing.T) {
	p := New(nil)
	bars := mkBars(trend(100, 0.005, 80))
	d1, d2 := p.PredictDirection(bars), p.PredictDirection(bars)
	v1, v2 := p.PredictVolatility(bars), p.PredictVolatility(bars)
	if d1 != d2 || v1 != v2 {
		t.Fatalf("identical input gave different scores: %v/%v, %v/%v", d1, d2, v1, v2)
	}
}

func TestFlatTwentyBarsBaseline(t *testing.T) {
	p := New(nil)
	bars := mkBars(flat(100, 20))
	if got := p.PredictDirection(bars); got != 0.5 {
		t.Fatalf("direction = %v, want 0.5", got)
	}
	if got := p.PredictVolatility(bars); got > 0.2 {
		t.Fatalf("volatility = %v, want <= 0.2", got)
	}
	if got := p.Confidence(0.7); got != 0.65 {
		t.Fatalf("confidence = %v, want 0.65", got)
	}
}
