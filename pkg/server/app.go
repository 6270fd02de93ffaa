package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"Elysian/internal/domain/repository"
	"Elysian/internal/handler/api"
	svcmetrics "Elysian/internal/service/metrics"
	"Elysian/internal/usecase"
	pkgch "Elysian/pkg/clickhouse"
	"Elysian/pkg/config"
	xhttp "Elysian/pkg/http"
	applogger "Elysian/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg       *config.Config
	l         *applogger.Logger
	handler   *api.PredictionsEchoHandler
	stream    *api.StreamHandler
	scheduler *usecase.PredictionScheduler
	chClient  *pkgch.Client
	pub       repository.Publisher

	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.PredictionsEchoHandler,
	stream *api.StreamHandler,
	scheduler *usecase.PredictionScheduler,
	chClient *pkgch.Client,
	pub repository.Publisher,
) *App {
	return &App{
		cfg:       cfg,
		l:         l,
		handler:   handler,
		stream:    stream,
		scheduler: scheduler,
		chClient:  chClient,
		pub:       pub,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svcmetrics.Register()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.l),
	)
	if a.stream != nil {
		a.stream.RegisterRoutes(a.httpServer.Echo())
	}

	a.scheduler.Start(ctx)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}
	a.l.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("backend", a.cfg.Backend.Type))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	if a.pub != nil {
		if err := a.pub.Close(); err != nil {
			a.l.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
