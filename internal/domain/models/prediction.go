package models

import "time"

// Prediction is the per-symbol output record of the signal engine.
// A nil *Prediction in a batch result marks that symbol as unavailable.
type Prediction struct {
	Symbol             string    `json:"symbol"`
	PriceDirectionProb float64   `json:"price_direction_prob"`
	PredictedVol       float64   `json:"predicted_volatility"`
	Confidence         float64   `json:"confidence"`
	Timestamp          time.Time `json:"timestamp"`
}

// ModelMetadata describes the provenance of the rule set / artifacts.
// Read optionally for status reporting; compute paths never depend on it.
type ModelMetadata struct {
	TrainingDate string         `json:"training_date"`
	Version      string         `json:"version"`
	Symbols      []string       `json:"symbols,omitempty"`
	Config       map[string]any `json:"config,omitempty"`
}

// SetupStatus reports the state of the engine's collaborators.
type SetupStatus struct {
	ArtifactsDir     string            `json:"artifacts_dir"`
	ArtifactsPresent bool              `json:"artifacts_present"`
	MetadataPresent  bool              `json:"metadata_present"`
	TrainingDate     string            `json:"training_date,omitempty"`
	Version          string            `json:"version,omitempty"`
	SmokePrediction  *Prediction       `json:"smoke_prediction,omitempty"`
	Errors           map[string]string `json:"errors,omitempty"`
}
