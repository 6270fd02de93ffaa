package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"Elysian/internal/di"
	domrepo "Elysian/internal/domain/repository"
	"Elysian/internal/usecase"
	"Elysian/pkg/config"
	applogger "Elysian/pkg/logger"
)

// Seeds the bar store with synthetic OHLCV history and writes the
// metadata document so the engine reports a ready setup.
func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	symbolsFlag := flag.String("symbols", "", "comma-separated symbols (overrides config)")
	bars := flag.Int("bars", 252, "bars of history per symbol")
	version := flag.String("version", "1.0", "metadata version")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	symbols := cfg.Predictor.Symbols
	if *symbolsFlag != "" {
		symbols = strings.Split(*symbolsFlag, ",")
	}

	deps, err := di.InitializeTrainer(cfg)
	if err != nil {
		log.Fatalf("trainer initialization failed: %v", err)
	}
	defer deps.ClickHouse.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := deps.Training.Run(ctx, usecase.TrainParams{
		Symbols:      symbols,
		Bars:         *bars,
		Timeframe:    domrepo.NormalizeTimeframe(cfg.Predictor.Timeframe),
		ArtifactsDir: cfg.Predictor.ArtifactsDir,
		DataDir:      cfg.Predictor.DataDir,
		Version:      *version,
	})
	if err != nil {
		log.Fatalf("training pipeline failed: %v", err)
	}

	deps.Logger.Info("training pipeline finished",
		applogger.Strings("seeded", res.Seeded),
		applogger.Strings("skipped", res.Skipped),
		applogger.String("version", res.Metadata.Version))
}
