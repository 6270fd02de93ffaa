package di

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"Elysian/internal/domain/repository"
	domsvc "Elysian/internal/domain/service"
	"Elysian/internal/handler/api"
	internalrepo "Elysian/internal/repository"
	"Elysian/internal/service/cache"
	"Elysian/internal/service/ratelimit"
	"Elysian/internal/services/predictor"
	"Elysian/internal/usecase"
	pkgch "Elysian/pkg/clickhouse"
	"Elysian/pkg/config"
	pkgkafka "Elysian/pkg/kafka"
	applogger "Elysian/pkg/logger"
	"Elysian/pkg/metrics"
	"Elysian/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client and initializes
// the bar tables.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, internalrepo.SchemaStatements(cfg.ClickHouse.Database)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideBarStore creates the ClickHouse-backed bar store.
func ProvideBarStore(client *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.BarStore {
	store := internalrepo.NewCHBarStore(client, cfg.ClickHouse.Database)
	store.SetLogger(l)
	return store
}

// ProvidePublisher creates the Kafka publisher when the kafka backend
// is configured; other backends get no publisher.
func ProvidePublisher(cfg *config.Config) (repository.Publisher, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.BatchBytes, cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMetadataStore creates the artifacts metadata store.
func ProvideMetadataStore(cfg *config.Config) repository.MetadataStore {
	return internalrepo.NewFileMetadataStore(cfg.Predictor.ArtifactsDir)
}

// ProvideCache creates the response cache backend.
func ProvideCache(cfg *config.Config) cache.BytesCache {
	if cfg.Cache.Type == "redis" {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideLimiter creates the per-client request limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New(20, 10)
}

// ProvidePredictor creates the rule-based predictor.
func ProvidePredictor(l *applogger.Logger) domsvc.Predictor {
	return predictor.New(l)
}

// ProvidePredictionUseCase wires the prediction use case.
func ProvidePredictionUseCase(store repository.BarStore, pred domsvc.Predictor, m repository.Metrics) *usecase.PredictionUseCase {
	return usecase.NewPredictionUseCase(store, pred, m)
}

// ProvideBarsUseCase wires the raw bar history use case.
func ProvideBarsUseCase(store repository.BarStore) *usecase.BarsUseCase {
	return usecase.NewBarsUseCase(store)
}

// ProvideStatusUseCase wires the setup status check.
func ProvideStatusUseCase(
	store repository.BarStore,
	md repository.MetadataStore,
	pred domsvc.Predictor,
	cfg *config.Config,
) *usecase.StatusUseCase {
	return usecase.NewStatusUseCase(
		store, md, pred,
		cfg.Predictor.Symbols,
		cfg.LookbackOrDefault(),
		repository.NormalizeTimeframe(cfg.Predictor.Timeframe),
		cfg.DataQualityOrDefault(),
	)
}

// ProvideTrainingUseCase wires the data-seeding pipeline.
func ProvideTrainingUseCase(
	store repository.BarStore,
	md repository.MetadataStore,
	l *applogger.Logger,
) *usecase.TrainingUseCase {
	gen := usecase.NewSampleDataGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	return usecase.NewTrainingUseCase(store, md, gen, l)
}

// ProvideScheduler wires the periodic batch prediction loop.
func ProvideScheduler(
	uc *usecase.PredictionUseCase,
	pub repository.Publisher,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.PredictionScheduler {
	return usecase.NewPredictionScheduler(uc, pub, l, cfg.Backend.Type, cfg.Predictor.ScheduleEvery, usecase.BatchPredictParams{
		Symbols:     cfg.Predictor.Symbols,
		N:           cfg.LookbackOrDefault(),
		Timeframe:   repository.NormalizeTimeframe(cfg.Predictor.Timeframe),
		DataQuality: cfg.DataQualityOrDefault(),
	})
}

// ProvidePredictionsHandler wires the REST handler.
func ProvidePredictionsHandler(
	l *applogger.Logger,
	uc *usecase.PredictionUseCase,
	bars *usecase.BarsUseCase,
	status *usecase.StatusUseCase,
	c cache.BytesCache,
	limiter *ratelimit.Limiter,
	cfg *config.Config,
) *api.PredictionsEchoHandler {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return api.NewPredictionsEchoHandler(l, uc, bars, status, c, ttl, limiter)
}

// ProvideStreamHandler wires the websocket prediction feed.
func ProvideStreamHandler(l *applogger.Logger, sched *usecase.PredictionScheduler) *api.StreamHandler {
	return api.NewStreamHandler(l, sched)
}

// TrainerDeps bundles what the train command needs.
type TrainerDeps struct {
	Logger     *applogger.Logger
	ClickHouse *pkgch.Client
	Training   *usecase.TrainingUseCase
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h *api.PredictionsEchoHandler,
	stream *api.StreamHandler,
	sched *usecase.PredictionScheduler,
	chClient *pkgch.Client,
	pub repository.Publisher,
) *server.App {
	return server.New(cfg, l, h, stream, sched, chClient, pub)
}
