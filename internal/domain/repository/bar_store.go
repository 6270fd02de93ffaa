package repository

import (
	"context"
	"time"

	"Elysian/internal/domain/models"
)

// Timeframe represents bar resolution buckets.
type Timeframe string

const (
	TF1m Timeframe = "1m"
	TF1h Timeframe = "1h"
	TF1d Timeframe = "1d"
)

// BarStore provides access to ordered OHLCV bar sequences per symbol.
type BarStore interface {
	GetBars(ctx context.Context, symbol string, from, to time.Time, tf Timeframe) ([]models.Bar, error)
	GetLatestNBars(ctx context.Context, symbol string, n int, tf Timeframe) ([]models.Bar, error)
	StoreBars(ctx context.Context, bars []models.Bar, tf Timeframe) error
	Health(ctx context.Context) error
	Close() error
}
