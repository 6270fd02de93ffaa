package usecase

import (
	"context"
	"sync"
	"time"

	"Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
	svcmetrics "Elysian/internal/service/metrics"
	applogger "Elysian/pkg/logger"
)

// PredictionScheduler runs batch predictions on a fixed interval and
// routes results to the configured backend. Live subscribers (the
// websocket stream) receive every non-nil prediction as it is produced.
type PredictionScheduler struct {
	uc       *PredictionUseCase
	pub      domrepo.Publisher
	l        *applogger.Logger
	backend  string
	interval time.Duration
	params   BatchPredictParams

	mu   sync.Mutex
	subs map[chan *models.Prediction]struct{}

	cancel context.CancelFunc
	done   chan struct{}
}

func NewPredictionScheduler(
	uc *PredictionUseCase,
	pub domrepo.Publisher,
	l *applogger.Logger,
	backend string,
	interval time.Duration,
	params BatchPredictParams,
) *PredictionScheduler {
	return &PredictionScheduler{
		uc:       uc,
		pub:      pub,
		l:        l,
		backend:  backend,
		interval: interval,
		params:   params,
		subs:     make(map[chan *models.Prediction]struct{}),
	}
}

// Start launches the ticker loop. A zero interval disables scheduling.
func (s *PredictionScheduler) Start(ctx context.Context) {
	if s.interval <= 0 || len(s.params.Symbols) == 0 {
		s.l.Info("prediction scheduler disabled")
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx)
	s.l.Info("prediction scheduler started",
		applogger.Duration("interval", s.interval),
		applogger.Strings("symbols", s.params.Symbols))
}

func (s *PredictionScheduler) loop(ctx context.Context) {
	defer close(s.done)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.runOnce(ctx)
		}
	}
}

func (s *PredictionScheduler) runOnce(ctx context.Context) {
	out, err := s.uc.PredictBatch(ctx, s.params)
	if err != nil {
		s.l.Error("scheduled batch failed", applogger.Error(err))
		return
	}

	var ok, unavailable int
	preds := make([]*models.Prediction, 0, len(out))
	for _, p := range out {
		if p == nil {
			unavailable++
			continue
		}
		ok++
		preds = append(preds, p)
		s.notify(p)
	}
	svcmetrics.BatchSymbols.WithLabelValues("ok").Set(float64(ok))
	svcmetrics.BatchSymbols.WithLabelValues("unavailable").Set(float64(unavailable))

	if s.backend == "kafka" && s.pub != nil && len(preds) > 0 {
		if err := s.pub.PublishBatch(ctx, preds); err != nil {
			s.l.Error("publish batch failed", applogger.Error(err))
		}
	}
}

// Subscribe registers a live prediction feed. The returned cancel func
// must be called when the consumer goes away.
func (s *PredictionScheduler) Subscribe() (<-chan *models.Prediction, func()) {
	ch := make(chan *models.Prediction, 64)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch, func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
}

func (s *PredictionScheduler) notify(p *models.Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- p:
		default: // slow consumer, drop
		}
	}
}

// Stop halts the loop and waits for the in-flight run to finish.
func (s *PredictionScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}
