package api

import (
	"net/http"
	"time"

	"Elysian/internal/usecase"
	xlogger "Elysian/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	streamWriteWait   = 10 * time.Second
	streamPingPeriod  = 30 * time.Second
	streamPongTimeout = 60 * time.Second
)

// StreamHandler pushes scheduled predictions to websocket clients as
// they are produced.
type StreamHandler struct {
	logger    *xlogger.Logger
	scheduler *usecase.PredictionScheduler
	upgrader  websocket.Upgrader
}

func NewStreamHandler(logger *xlogger.Logger, scheduler *usecase.PredictionScheduler) *StreamHandler {
	return &StreamHandler{
		logger:    logger,
		scheduler: scheduler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *StreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/predictions", h.Stream)
}

func (h *StreamHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	feed, cancel := h.scheduler.Subscribe()
	defer cancel()
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(streamPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongTimeout))
	})

	// reader goroutine only services control frames
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return nil
		case <-c.Request().Context().Done():
			return nil
		case p := <-feed:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(p); err != nil {
				h.logger.Warn("stream write failed", xlogger.Error(err))
				return nil
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
