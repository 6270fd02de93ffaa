package repository

import (
	"context"

	"Elysian/internal/domain/models"
)

// Publisher delivers prediction records to a downstream transport.
type Publisher interface {
	Publish(ctx context.Context, p *models.Prediction) error
	PublishBatch(ctx context.Context, preds []*models.Prediction) error
	Close() error
}

// MetadataStore reads and writes the optional model metadata document.
type MetadataStore interface {
	Read() (*models.ModelMetadata, error)
	Write(md *models.ModelMetadata) error
	Exists() bool
	Dir() string
}

// Metrics records operational counters for the engine.
type Metrics interface {
	RecordPrediction(symbol, outcome string)
	RecordError(kind string)
	RecordDirectionProb(symbol string, prob float64)
	RecordLatency(op string, seconds float64)
}
