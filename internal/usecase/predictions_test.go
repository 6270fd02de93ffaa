package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
)

type fakeBarStore struct {
	bars map[string][]models.Bar
	fail map[string]bool
}

func (f *fakeBarStore) GetBars(ctx context.Context, symbol string, from, to time.Time, tf domrepo.Timeframe) ([]models.Bar, error) {
	return f.bars[symbol], nil
}

func (f *fakeBarStore) GetLatestNBars(ctx context.Context, symbol string, n int, tf domrepo.Timeframe) ([]models.Bar, error) {
	if f.fail[symbol] {
		return nil, fmt.Errorf("storage down for %s", symbol)
	}
	bars := f.bars[symbol]
	if len(bars) > n {
		bars = bars[len(bars)-n:]
	}
	return bars, nil
}

func (f *fakeBarStore) StoreBars(ctx context.Context, bars []models.Bar, tf domrepo.Timeframe) error {
	for _, b := range bars {
		f.bars[b.Symbol] = append(f.bars[b.Symbol], b)
	}
	return nil
}

func (f *fakeBarStore) Health(ctx context.Context) error { return nil }
func (f *fakeBarStore) Close() error                     { return nil }

type fakePredictor struct{}

func (fakePredictor) PredictDirection(bars []models.Bar) float64  { return 0.6 }
func (fakePredictor) PredictVolatility(bars []models.Bar) float64 { return 0.3 }
func (fakePredictor) Confidence(q float64) float64                { return 0.65 }

func (fakePredictor) BatchPredict(symbolBars map[string][]models.Bar, q float64) map[string]*models.Prediction {
	out := make(map[string]*models.Prediction, len(symbolBars))
	for sym, bars := range symbolBars {
		if len(bars) == 0 {
			out[sym] = nil
			continue
		}
		out[sym] = &models.Prediction{Symbol: sym, PriceDirectionProb: 0.6, PredictedVol: 0.3, Confidence: 0.65, Timestamp: time.Now()}
	}
	return out
}

type nopMetrics struct{}

func (nopMetrics) RecordPrediction(symbol, outcome string)         {}
func (nopMetrics) RecordError(kind string)                         {}
func (nopMetrics) RecordDirectionProb(symbol string, prob float64) {}
func (nopMetrics) RecordLatency(op string, seconds float64)        {}

func someBars(symbol string, n int) []models.Bar {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := range bars {
		bars[i] = models.Bar{Timestamp: base.AddDate(0, 0, i), Symbol: symbol, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
	}
	return bars
}

func TestPredictRequiresSymbol(t *testing.T) {
	uc := NewPredictionUseCase(&fakeBarStore{bars: map[string][]models.Bar{}}, fakePredictor{}, nopMetrics{})
	if _, err := uc.Predict(context.Background(), PredictParams{}); err == nil {
		t.Fatalf("missing symbol should fail")
	}
}

func TestPredictReturnsStampedRecord(t *testing.T) {
	store := &fakeBarStore{bars: map[string][]models.Bar{"AAPL": someBars("AAPL", 60)}}
	uc := NewPredictionUseCase(store, fakePredictor{}, nopMetrics{})
	p, err := uc.Predict(context.Background(), PredictParams{Symbol: "AAPL", N: 60, Timeframe: domrepo.TF1d, DataQuality: 0.7})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if p.Symbol != "AAPL" || p.PriceDirectionProb != 0.6 || p.PredictedVol != 0.3 || p.Confidence != 0.65 {
		t.Fatalf("unexpected prediction: %+v", p)
	}
	if p.Timestamp.IsZero() {
		t.Fatalf("timestamp not stamped")
	}
}

func TestPredictBatchIsolatesStorageFailures(t *testing.T) {
	store := &fakeBarStore{
		bars: map[string][]models.Bar{"GOOD": someBars("GOOD", 60)},
		fail: map[string]bool{"DOWN": true},
	}
	uc := NewPredictionUseCase(store, fakePredictor{}, nopMetrics{})
	out, err := uc.PredictBatch(context.Background(), BatchPredictParams{
		Symbols: []string{"GOOD", "DOWN"}, N: 60, Timeframe: domrepo.TF1d, DataQuality: 0.7,
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
	if out["DOWN"] != nil {
		t.Fatalf("storage failure should mark symbol unavailable")
	}
	if out["GOOD"] == nil {
		t.Fatalf("healthy symbol should still score")
	}
}

func TestIndicatorsResultShape(t *testing.T) {
	store := &fakeBarStore{bars: map[string][]models.Bar{"AAPL": someBars("AAPL", 30)}}
	uc := NewPredictionUseCase(store, fakePredictor{}, nopMetrics{})
	res, err := uc.Indicators(context.Background(), IndicatorsParams{Symbol: "AAPL", N: 30, Timeframe: domrepo.TF1d})
	if err != nil {
		t.Fatalf("indicators: %v", err)
	}
	if res.Count != 30 || len(res.Rows) != 30 {
		t.Fatalf("count mismatch: %d rows, count %d", len(res.Rows), res.Count)
	}
	if res.Latest == nil {
		t.Fatalf("latest snapshot missing")
	}
}
