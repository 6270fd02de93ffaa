package usecase

import (
	"fmt"
	"math/rand"
	"time"

	"Elysian/internal/domain/models"
)

// SampleDataGenerator synthesizes random-walk OHLCV history for seeding
// an empty bar store. The RNG is injected so runs are reproducible.
type SampleDataGenerator struct {
	rng *rand.Rand
}

func NewSampleDataGenerator(rng *rand.Rand) *SampleDataGenerator {
	return &SampleDataGenerator{rng: rng}
}

const (
	sampleDrift    = 0.0005
	sampleDailyVol = 0.02
	sampleSpread   = 0.01
)

// Generate produces n daily bars for symbol ending at the most recent
// midnight UTC. Prices follow a geometric random walk with a small
// positive drift.
func (g *SampleDataGenerator) Generate(symbol string, n int) ([]models.Bar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if n <= 0 {
		return nil, fmt.Errorf("bar count must be positive, got %d", n)
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -n+1)

	price := 50.0 + g.rng.Float64()*450.0
	bars := make([]models.Bar, 0, n)
	for i := 0; i < n; i++ {
		ret := sampleDrift + g.rng.NormFloat64()*sampleDailyVol
		open := price
		close := price * (1 + ret)
		if close <= 0 {
			close = open
		}

		spread := g.rng.Float64() * sampleSpread
		high := maxf(open, close) * (1 + spread)
		low := minf(open, close) * (1 - spread)
		volume := int64(1_000_000 + g.rng.Intn(9_000_000))

		bars = append(bars, models.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Symbol:    symbol,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    volume,
		})
		price = close
	}
	return bars, nil
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
