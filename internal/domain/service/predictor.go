package service

import (
	"Elysian/internal/domain/models"
)

// Predictor produces bounded direction and volatility estimates from
// ordered bar sequences.
type Predictor interface {
	PredictDirection(bars []models.Bar) float64
	PredictVolatility(bars []models.Bar) float64
	Confidence(dataQuality float64) float64
	BatchPredict(symbolBars map[string][]models.Bar, dataQuality float64) map[string]*models.Prediction
}
