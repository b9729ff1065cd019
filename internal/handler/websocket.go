package handler

import (
	"net/http"
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kyiku/jatext/internal/middleware"
	"github.com/kyiku/jatext/internal/pipeline"
	"github.com/kyiku/jatext/internal/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

// WebSocketHandler handles WebSocket connections.
type WebSocketHandler struct {
	presets   *pipeline.Presets
	jobs      websocket.JobService
	maxLength int
	logger    *zap.Logger
	upgrader  gorilla.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler. jobs may be nil.
func NewWebSocketHandler(presets *pipeline.Presets, jobs websocket.JobService, maxLength int, allowedOrigins []string, logger *zap.Logger) *WebSocketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketHandler{
		presets:   presets,
		jobs:      jobs,
		maxLength: maxLength,
		logger:    logger,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// Non-browser clients send no Origin.
				return origin == "" || middleware.IsAllowedOrigin(origin, allowedOrigins)
			},
		},
	}
}

// Connect upgrades the request and serves messages until the client leaves.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return nil
	}

	conn := &wsConn{conn: ws}
	dispatcher := websocket.NewDispatcher(conn, h.presets, h.jobs, h.maxLength)
	defer func() {
		dispatcher.Close()
		_ = conn.Close()
	}()

	ws.SetReadLimit(maxMessageSize)
	h.logger.Debug("websocket connected", zap.String("remote_ip", c.RealIP()))

	for {
		messageType, message, err := ws.ReadMessage()
		if err != nil {
			if gorilla.IsUnexpectedCloseError(err, gorilla.CloseGoingAway, gorilla.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.Error(err))
			}
			return nil
		}
		if messageType != gorilla.TextMessage {
			continue
		}
		dispatcher.Handle(message)
	}
}

// wsConn serializes writes; job workers and the read loop share a connection.
type wsConn struct {
	mu   sync.Mutex
	conn *gorilla.Conn
}

func (w *wsConn) WriteMessage(messageType int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(messageType, data)
}

func (w *wsConn) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteJSON(v)
}

func (w *wsConn) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.WriteControl(gorilla.CloseMessage,
		gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""), time.Now().Add(writeWait))
	return w.conn.Close()
}
