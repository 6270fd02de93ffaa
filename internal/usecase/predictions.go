package usecase

import (
	"context"
	"fmt"
	"time"

	"Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
	domsvc "Elysian/internal/domain/service"
	"Elysian/internal/services/indicators"
)

// PredictionUseCase loads bars from storage and runs the predictor over them.
type PredictionUseCase struct {
	store     domrepo.BarStore
	predictor domsvc.Predictor
	metrics   domrepo.Metrics
}

func NewPredictionUseCase(store domrepo.BarStore, predictor domsvc.Predictor, metrics domrepo.Metrics) *PredictionUseCase {
	return &PredictionUseCase{store: store, predictor: predictor, metrics: metrics}
}

type PredictParams struct {
	Symbol      string
	N           int
	Timeframe   domrepo.Timeframe
	DataQuality float64
}

func (uc *PredictionUseCase) Predict(ctx context.Context, p PredictParams) (*models.Prediction, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.N <= 0 {
		p.N = 252
	}

	start := time.Now()
	bars, err := uc.store.GetLatestNBars(ctx, p.Symbol, p.N, p.Timeframe)
	if err != nil {
		uc.metrics.RecordError("load_bars")
		return nil, fmt.Errorf("load bars: %w", err)
	}
	uc.metrics.RecordLatency("load_bars", time.Since(start).Seconds())

	dir := uc.predictor.PredictDirection(bars)
	vol := uc.predictor.PredictVolatility(bars)
	conf := uc.predictor.Confidence(p.DataQuality)

	uc.metrics.RecordPrediction(p.Symbol, "ok")
	uc.metrics.RecordDirectionProb(p.Symbol, dir)

	return &models.Prediction{
		Symbol:             p.Symbol,
		PriceDirectionProb: dir,
		PredictedVol:       vol,
		Confidence:         conf,
		Timestamp:          time.Now().UTC(),
	}, nil
}

type BatchPredictParams struct {
	Symbols     []string
	N           int
	Timeframe   domrepo.Timeframe
	DataQuality float64
}

// PredictBatch loads bars for every symbol and scores them in one pass.
// A symbol whose bars cannot be loaded is entered as nil rather than
// failing the batch.
func (uc *PredictionUseCase) PredictBatch(ctx context.Context, p BatchPredictParams) (map[string]*models.Prediction, error) {
	if len(p.Symbols) == 0 {
		return nil, fmt.Errorf("symbols required")
	}
	if p.N <= 0 {
		p.N = 252
	}

	symbolBars := make(map[string][]models.Bar, len(p.Symbols))
	for _, sym := range p.Symbols {
		bars, err := uc.store.GetLatestNBars(ctx, sym, p.N, p.Timeframe)
		if err != nil {
			uc.metrics.RecordError("load_bars")
			symbolBars[sym] = nil
			continue
		}
		symbolBars[sym] = bars
	}

	start := time.Now()
	out := uc.predictor.BatchPredict(symbolBars, p.DataQuality)
	uc.metrics.RecordLatency("batch_predict", time.Since(start).Seconds())

	for sym, pred := range out {
		if pred == nil {
			uc.metrics.RecordPrediction(sym, "unavailable")
			continue
		}
		uc.metrics.RecordPrediction(sym, "ok")
		uc.metrics.RecordDirectionProb(sym, pred.PriceDirectionProb)
	}
	return out, nil
}

type IndicatorsParams struct {
	Symbol    string
	N         int
	Timeframe domrepo.Timeframe
}

type IndicatorsResult struct {
	Symbol    string                     `json:"symbol"`
	Timeframe string                     `json:"timeframe"`
	Count     int                        `json:"count"`
	Latest    *models.IndicatorSnapshot  `json:"latest,omitempty"`
	Rows      []models.IndicatorSnapshot `json:"rows"`
}

// Indicators computes the full indicator table for a symbol's recent bars.
func (uc *PredictionUseCase) Indicators(ctx context.Context, p IndicatorsParams) (*IndicatorsResult, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.N <= 0 {
		p.N = 252
	}

	bars, err := uc.store.GetLatestNBars(ctx, p.Symbol, p.N, p.Timeframe)
	if err != nil {
		uc.metrics.RecordError("load_bars")
		return nil, fmt.Errorf("load bars: %w", err)
	}

	rows := indicators.Compute(bars)
	res := &IndicatorsResult{
		Symbol:    p.Symbol,
		Timeframe: string(p.Timeframe),
		Count:     len(rows),
		Rows:      rows,
	}
	if len(rows) > 0 {
		res.Latest = &rows[len(rows)-1]
	}
	return res, nil
}
