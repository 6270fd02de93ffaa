package predictor

import (
	"Elysian/internal/domain/models"
	applogger "Elysian/pkg/logger"
)

// BatchPredict scores every symbol independently. A fault in one
// symbol's sequence yields a nil (unavailable) entry for that symbol
// and never affects the rest of the batch; partial success is the
// normal outcome. Pass dataQuality < 0 to use the default placeholder.
func (p *RulePredictor) BatchPredict(symbolBars map[string][]models.Bar, dataQuality float64) map[string]*models.Prediction {
	if dataQuality < 0 {
		dataQuality = DefaultDataQuality
	}
	conf := p.Confidence(dataQuality)

	results := make(map[string]*models.Prediction, len(symbolBars))
	for symbol, bars := range symbolBars {
		if err := validateBars(bars); err != nil {
			if p.l != nil {
				p.l.Warn("batch predict: symbol unavailable",
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			results[symbol] = nil
			continue
		}

		dir, err := scoreDirection(bars)
		if err != nil {
			p.warn("direction score fault", err)
			dir = NeutralDirection
		}
		vol, err := scoreVolatility(bars)
		if err != nil {
			p.warn("volatility score fault", err)
			vol = DefaultVolatility
		}

		results[symbol] = newPrediction(symbol, dir, vol, conf)
	}
	return results
}
