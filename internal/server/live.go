package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/prithvisense/thermal-monitor/internal/models"
)

// Constants for WebSocket timeouts
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// LiveHandler pushes the current snapshot to connected dashboard clients on a
// fixed interval over WebSocket.
type LiveHandler struct {
	upgrader       websocket.Upgrader
	cache          *SnapshotCache
	interval       time.Duration
	logger         zerolog.Logger
	allowedOrigins []string
	clients        map[string]time.Time // remote addr -> connected at
	mutex          sync.RWMutex
}

// NewLiveHandler creates a new live snapshot feed handler
func NewLiveHandler(cache *SnapshotCache, interval time.Duration, logger zerolog.Logger, allowedOrigins ...string) *LiveHandler {
	h := &LiveHandler{
		cache:          cache,
		interval:       interval,
		logger:         logger,
		allowedOrigins: allowedOrigins,
		clients:        make(map[string]time.Time),
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the incoming request's Origin against the configured allowlist
func (h *LiveHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	// No Origin header means same-origin request
	if origin == "" {
		return true
	}

	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}

	h.logger.Warn().Str("origin", origin).Msg("Rejected WebSocket connection: origin not in allowlist")
	return false
}

// ServeHTTP upgrades the connection and starts the push loop.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection")
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages a single WebSocket connection
func (h *LiveHandler) handleConnection(conn *websocket.Conn) {
	connKey := conn.RemoteAddr().String()

	h.mutex.Lock()
	h.clients[connKey] = time.Now()
	h.mutex.Unlock()

	h.logger.Info().Str("client", connKey).Msg("Live client connected")

	defer conn.Close()
	defer h.removeClient(connKey)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Drain client frames so close and pong frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Warn().Err(err).Str("client", connKey).Msg("WebSocket error")
				}
				return
			}
		}
	}()

	// First push immediately, then on the interval.
	if err := h.pushSnapshot(conn); err != nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	pinger := time.NewTicker(pingPeriod)
	defer pinger.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := h.pushSnapshot(conn); err != nil {
				h.logger.Debug().Err(err).Str("client", connKey).Msg("Push failed, dropping client")
				return
			}
		case <-pinger.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// pushSnapshot sends the current snapshot set to one client.
func (h *LiveHandler) pushSnapshot(conn *websocket.Conn) error {
	result := h.cache.Get()
	payload := models.SnapshotMessage{
		Snapshots:   result.Snapshots,
		Source:      string(result.Source),
		GeneratedAt: result.GeneratedAt,
	}
	msg, err := models.NewMessage(models.MessageTypeSnapshot, payload)
	if err != nil {
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// removeClient removes a client from the active set
func (h *LiveHandler) removeClient(connKey string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, connKey)
	h.logger.Info().Str("client", connKey).Msg("Live client disconnected")
}

// ClientCount returns the number of currently connected live clients.
func (h *LiveHandler) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}
