package api

import (
	"encoding/json"
	"fmt"
	"time"

	models "Elysian/internal/domain/models"
	domrepo "Elysian/internal/domain/repository"
	"Elysian/internal/service/cache"
	svcmetrics "Elysian/internal/service/metrics"
	"Elysian/internal/service/ratelimit"
	"Elysian/internal/usecase"
	xhttp "Elysian/pkg/http"
	xlogger "Elysian/pkg/logger"
	"Elysian/pkg/util"

	"github.com/labstack/echo/v4"
)

// PredictionsEchoHandler exposes prediction and indicator endpoints.
type PredictionsEchoHandler struct {
	logger   *xlogger.Logger
	uc       *usecase.PredictionUseCase
	bars     *usecase.BarsUseCase
	status   *usecase.StatusUseCase
	cache    cache.BytesCache
	cacheTTL time.Duration
	limiter  *ratelimit.Limiter
}

func NewPredictionsEchoHandler(
	logger *xlogger.Logger,
	uc *usecase.PredictionUseCase,
	bars *usecase.BarsUseCase,
	status *usecase.StatusUseCase,
	c cache.BytesCache,
	cacheTTL time.Duration,
	limiter *ratelimit.Limiter,
) *PredictionsEchoHandler {
	return &PredictionsEchoHandler{
		logger:   logger,
		uc:       uc,
		bars:     bars,
		status:   status,
		cache:    c,
		cacheTTL: cacheTTL,
		limiter:  limiter,
	}
}

func (h *PredictionsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/predict", h.Predict)
	g.POST("/predict/batch", h.PredictBatch)
	g.GET("/indicators", h.Indicators)
	g.GET("/bars", h.Bars)
	g.GET("/status", h.Status)
}

func (h *PredictionsEchoHandler) Bars(c echo.Context) error {
	start := time.Now()
	defer func() {
		svcmetrics.PredictionLatency.WithLabelValues("bars").Observe(time.Since(start).Seconds())
	}()

	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.TooManyRequestsResponse(c)
	}

	symbol := c.QueryParam("symbol")
	if symbol == "" {
		return xhttp.BadRequestResponse(c, "symbol required")
	}
	tf := domrepo.NormalizeTimeframe(c.QueryParam("tf"))

	now := time.Now().UTC()
	to := util.ParseTimeDefault(c.QueryParam("to"), now)
	from := util.ParseTimeDefault(c.QueryParam("from"), to.AddDate(0, 0, -30))
	from, to = util.AlignFromTo(from, to, string(tf))
	limit := util.ParseIntDefault(c.QueryParam("limit"), 10000)

	res, err := h.bars.GetBars(c.Request().Context(), usecase.GetBarsParams{
		Symbol:    symbol,
		From:      from,
		To:        to,
		Timeframe: tf,
		Limit:     limit,
	})
	if err != nil {
		svcmetrics.PredictionErrors.WithLabelValues("bars").Inc()
		h.logger.Error("bars usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) Predict(c echo.Context) error {
	start := time.Now()
	defer func() {
		svcmetrics.PredictionLatency.WithLabelValues("predict").Observe(time.Since(start).Seconds())
	}()

	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tf := domrepo.NormalizeTimeframe(req.TF)

	res, err := h.uc.Predict(c.Request().Context(), usecase.PredictParams{
		Symbol:      req.Symbol,
		N:           req.N,
		Timeframe:   tf,
		DataQuality: req.Quality,
	})
	if err != nil {
		svcmetrics.PredictionErrors.WithLabelValues("predict").Inc()
		h.logger.Error("predict usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) PredictBatch(c echo.Context) error {
	start := time.Now()
	defer func() {
		svcmetrics.PredictionLatency.WithLabelValues("predict_batch").Observe(time.Since(start).Seconds())
	}()

	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.BatchPredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if len(req.Symbols) == 0 {
		return xhttp.BadRequestResponse(c, "symbols required")
	}
	tf := domrepo.NormalizeTimeframe(req.TF)

	out, err := h.uc.PredictBatch(c.Request().Context(), usecase.BatchPredictParams{
		Symbols:     req.Symbols,
		N:           req.N,
		Timeframe:   tf,
		DataQuality: req.Quality,
	})
	if err != nil {
		svcmetrics.PredictionErrors.WithLabelValues("predict_batch").Inc()
		h.logger.Error("batch usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, out)
}

func (h *PredictionsEchoHandler) Indicators(c echo.Context) error {
	start := time.Now()
	defer func() {
		svcmetrics.PredictionLatency.WithLabelValues("indicators").Observe(time.Since(start).Seconds())
	}()

	if h.limiter != nil && !h.limiter.Allow(c.RealIP()) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tf := domrepo.NormalizeTimeframe(req.TF)

	key := fmt.Sprintf("ind:%s:%d:%s", req.Symbol, req.N, tf)
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(key); err == nil && ok {
			return c.JSONBlob(200, b)
		}
	}

	res, err := h.uc.Indicators(c.Request().Context(), usecase.IndicatorsParams{
		Symbol:    req.Symbol,
		N:         req.N,
		Timeframe: tf,
	})
	if err != nil {
		svcmetrics.PredictionErrors.WithLabelValues("indicators").Inc()
		h.logger.Error("indicators usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if h.cache != nil {
		if b, err := json.Marshal(xhttp.APIResponse{Status: 200, Message: "OK", Data: res}); err == nil {
			_ = h.cache.SetBytes(key, b, h.cacheTTL)
		}
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) Status(c echo.Context) error {
	st := h.status.Check(c.Request().Context())
	return xhttp.SuccessResponse(c, st)
}
