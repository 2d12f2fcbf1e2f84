package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// WSHandler upgrades HTTP requests into registered WebSocket clients.
type WSHandler struct {
	registry   *Registry
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	bufferSize int
	pingPeriod time.Duration
	pongWait   time.Duration
}

type WSOption func(*WSHandler)

// WithBufferSize sets the per-client outbound buffer.
func WithBufferSize(n int) WSOption {
	return func(h *WSHandler) { h.bufferSize = n }
}

// WithKeepalive overrides the ping interval and pong deadline.
func WithKeepalive(ping, pong time.Duration) WSOption {
	return func(h *WSHandler) {
		h.pingPeriod = ping
		h.pongWait = pong
	}
}

// WithCheckOrigin replaces the upgrader's origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) WSOption {
	return func(h *WSHandler) { h.upgrader.CheckOrigin = fn }
}

func NewWSHandler(registry *Registry, logger *slog.Logger, opts ...WSOption) *WSHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &WSHandler{
		registry:   registry,
		logger:     logger,
		bufferSize: DefaultBufferSize,
		pingPeriod: pingPeriod,
		pongWait:   pongWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Serve upgrades the request and runs the connection for userID until the
// peer disconnects or the client is replaced. Callers must have verified
// userID already.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "user_id", userID, "error", err.Error())
		return
	}

	client := NewClient(h.bufferSize)
	h.registry.Register(userID, client)
	h.logger.Info("websocket connected", "user_id", userID)

	go h.writePump(conn, client)
	h.readPump(conn, client, userID)

	h.registry.Deregister(userID, client)
	client.Close()
	h.logger.Info("websocket disconnected", "user_id", userID)
}

// readPump echoes JSON messages from the peer back onto the user's channel.
func (h *WSHandler) readPump(conn *websocket.Conn, client *Client, userID string) {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "user_id", userID, "error", err.Error())
			}
			return
		}

		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			h.logger.Debug("ignoring non-json websocket message", "user_id", userID)
			continue
		}
		echo, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		if !client.enqueue(echo) {
			h.logger.Warn("echo dropped", "user_id", userID)
		}
	}
}

// writePump drains the client's buffer and keeps the connection alive. It
// owns every write to conn and closes it on exit.
func (h *WSHandler) writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(h.pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case payload := <-client.Outbound():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-client.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
