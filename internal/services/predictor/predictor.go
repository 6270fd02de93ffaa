package predictor

import (
	"fmt"
	"math"
	"time"

	"Elysian/internal/domain/models"
	domsvc "Elysian/internal/domain/service"
	"Elysian/internal/services/indicators"
	applogger "Elysian/pkg/logger"
)

// Neutral defaults returned when history is insufficient or a
// computation fault is caught at the scoring boundary.
const (
	NeutralDirection  = 0.5
	DefaultVolatility = 0.2

	MinDirection = 0.1
	MaxDirection = 0.9
	MinVol       = 0.05
	MaxVol       = 1.0

	// Minimum history before either scorer attempts a real computation.
	MinBars = 20

	// DefaultDataQuality is the placeholder quality score used by batch
	// prediction when the caller does not supply one.
	DefaultDataQuality = 0.7
)

// RulePredictor scores direction and volatility from hand-authored
// rules over the indicator snapshot sequence. All methods are pure
// over their inputs; faults are mapped to neutral defaults at the
// exported boundary and never propagated.
type RulePredictor struct {
	l *applogger.Logger
}

func New(l *applogger.Logger) *RulePredictor { return &RulePredictor{l: l} }

var _ domsvc.Predictor = (*RulePredictor)(nil)

// PredictDirection returns the probability of a price increase,
// clamped to [0.1, 0.9]. Sequences shorter than MinBars score the
// neutral 0.5, as does any internal computation fault.
func (p *RulePredictor) PredictDirection(bars []models.Bar) float64 {
	v, err := scoreDirection(bars)
	if err != nil {
		p.warn("direction score fault", err)
		return NeutralDirection
	}
	return v
}

// PredictVolatility returns the forward volatility estimate, clamped
// to [0.05, 1.0]. Sequences shorter than MinBars yield the default
// 0.2, as does any internal computation fault.
func (p *RulePredictor) PredictVolatility(bars []models.Bar) float64 {
	v, err := scoreVolatility(bars)
	if err != nil {
		p.warn("volatility score fault", err)
		return DefaultVolatility
	}
	return v
}

func (p *RulePredictor) warn(msg string, err error) {
	if p.l != nil {
		p.l.Warn(msg, applogger.Error(err))
	}
}

// scoreDirection is the fallible scoring boundary. Callers supply the
// neutral default on error.
func scoreDirection(bars []models.Bar) (float64, error) {
	if len(bars) < MinBars {
		return NeutralDirection, nil
	}
	if err := validateBars(bars); err != nil {
		return 0, err
	}

	snaps := indicators.Compute(bars)
	latest := snaps[len(snaps)-1]
	close := bars[len(bars)-1].Close

	score := NeutralDirection

	// Moving-average stack: strict ordering, ties adjust nothing.
	if close > latest.SMA5 && latest.SMA5 > latest.SMA20 {
		score += 0.2
	} else if close < latest.SMA5 && latest.SMA5 < latest.SMA20 {
		score -= 0.2
	}

	// RSI mean reversion, strict 30/70 bounds.
	if latest.RSI < 30 {
		score += 0.15
	} else if latest.RSI > 70 {
		score -= 0.15
	}

	// Momentum over the 5-bar lookback.
	if len(bars) >= indicators.MomentumLag {
		ref := bars[len(bars)-indicators.MomentumLag].Close
		if ref != 0 {
			momentum := (close - ref) / ref
			score += clamp(momentum*2, -0.2, 0.2)
		}
	}

	if math.IsNaN(score) {
		return 0, fmt.Errorf("direction score is NaN")
	}
	return clamp(score, MinDirection, MaxDirection), nil
}

// scoreVolatility blends the latest rolling volatility with its
// long-term mean (persistence-weighted mean reversion).
func scoreVolatility(bars []models.Bar) (float64, error) {
	if len(bars) < MinBars {
		return DefaultVolatility, nil
	}
	if err := validateBars(bars); err != nil {
		return 0, err
	}

	series := indicators.RollingVolatility(models.Closes(bars), indicators.VolWindow)
	var defined []float64
	for _, v := range series {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}

	// No defined window at all: the default stands as-is rather than
	// round-tripping through the blend.
	if len(defined) == 0 {
		return DefaultVolatility, nil
	}

	latest := defined[len(defined)-1]
	sum := 0.0
	for _, v := range defined {
		sum += v
	}
	longTerm := sum / float64(len(defined))

	predicted := 0.7*latest + 0.3*longTerm
	if math.IsNaN(predicted) {
		return 0, fmt.Errorf("volatility blend is NaN")
	}
	return clamp(predicted, MinVol, MaxVol), nil
}

// validateBars rejects sequences the numeric rules cannot score.
func validateBars(bars []models.Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("empty bar sequence")
	}
	for i, b := range bars {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) || b.Close <= 0 {
			return fmt.Errorf("bar %d: invalid close %v", i, b.Close)
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func newPrediction(symbol string, dir, vol, conf float64) *models.Prediction {
	return &models.Prediction{
		Symbol:             symbol,
		PriceDirectionProb: dir,
		PredictedVol:       vol,
		Confidence:         conf,
		Timestamp:          time.Now(),
	}
}
