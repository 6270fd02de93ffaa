package usecase

import (
	"context"
	"fmt"
	"os"
	"time"

	"Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
	applogger "Elysian/pkg/logger"
)

// TrainingUseCase prepares the engine's working directories, seeds the
// bar store with synthetic history when a symbol has none, and records
// provenance metadata.
type TrainingUseCase struct {
	store    domrepo.BarStore
	metadata domrepo.MetadataStore
	gen      *SampleDataGenerator
	l        *applogger.Logger
}

func NewTrainingUseCase(store domrepo.BarStore, metadata domrepo.MetadataStore, gen *SampleDataGenerator, l *applogger.Logger) *TrainingUseCase {
	return &TrainingUseCase{store: store, metadata: metadata, gen: gen, l: l}
}

type TrainParams struct {
	Symbols      []string
	Bars         int
	Timeframe    domrepo.Timeframe
	ArtifactsDir string
	DataDir      string
	Version      string
}

type TrainResult struct {
	Seeded   []string
	Skipped  []string
	Metadata *models.ModelMetadata
}

// Run executes the full preparation pipeline. Symbols that already hold
// enough history are left untouched.
func (uc *TrainingUseCase) Run(ctx context.Context, p TrainParams) (*TrainResult, error) {
	if len(p.Symbols) == 0 {
		return nil, fmt.Errorf("symbols required")
	}
	if p.Bars <= 0 {
		p.Bars = 252
	}
	if p.Version == "" {
		p.Version = "1.0"
	}

	for _, dir := range []string{p.ArtifactsDir, p.DataDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	res := &TrainResult{}
	for _, sym := range p.Symbols {
		existing, err := uc.store.GetLatestNBars(ctx, sym, p.Bars, p.Timeframe)
		if err == nil && len(existing) >= p.Bars {
			res.Skipped = append(res.Skipped, sym)
			continue
		}

		bars, err := uc.gen.Generate(sym, p.Bars)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", sym, err)
		}
		if err := uc.store.StoreBars(ctx, bars, p.Timeframe); err != nil {
			return nil, fmt.Errorf("store %s: %w", sym, err)
		}
		uc.l.Info("seeded sample history",
			applogger.String("symbol", sym),
			applogger.Int("bars", len(bars)))
		res.Seeded = append(res.Seeded, sym)
	}

	md := &models.ModelMetadata{
		TrainingDate: time.Now().UTC().Format(time.RFC3339),
		Version:      p.Version,
		Symbols:      p.Symbols,
		Config: map[string]any{
			"bars":      p.Bars,
			"timeframe": string(p.Timeframe),
		},
	}
	if err := uc.metadata.Write(md); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}
	res.Metadata = md
	return res, nil
}
