//go:build wireinject
// +build wireinject

package di

import (
	"Elysian/pkg/config"
	"Elysian/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvidePublisher,

		// Repositories
		ProvideBarStore,
		ProvideMetadataStore,

		// Services
		ProvideCache,
		ProvideLimiter,
		ProvidePredictor,

		// Use cases
		ProvidePredictionUseCase,
		ProvideBarsUseCase,
		ProvideStatusUseCase,
		ProvideScheduler,

		// HTTP handlers
		ProvidePredictionsHandler,
		ProvideStreamHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

// InitializeTrainer wires the data-seeding pipeline for the train command.
func InitializeTrainer(cfg *config.Config) (*TrainerDeps, error) {
	wire.Build(
		ProvideLogger,
		ProvideClickHouseClient,
		ProvideBarStore,
		ProvideMetadataStore,
		ProvideTrainingUseCase,
		wire.Struct(new(TrainerDeps), "*"),
	)
	return &TrainerDeps{}, nil
}
