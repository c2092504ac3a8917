package push

import (
	"net/http"
	"sync"
	"time"

	"livevip/internal/core/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Should be configured properly for production
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// CatalogEvent is the wire shape pushed to connected clients when the
// catalog changes. Clients treat it as a hint to refresh early; the
// poll loop remains the source of truth.
type CatalogEvent struct {
	Type      string         `json:"type"`
	Stream    *domain.Stream `json:"stream,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Hub fans catalog change events out to websocket subscribers.
type Hub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]struct{}

	writeTimeout time.Duration
	logger       *zap.SugaredLogger
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		connections:  make(map[*websocket.Conn]struct{}),
		writeTimeout: 10 * time.Second,
		logger:       logger,
	}
}

// HandleWebSocket upgrades the request and keeps the connection
// registered until the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	h.connections[conn] = struct{}{}
	h.mu.Unlock()

	h.logger.Debugw("websocket client connected", "remote", conn.RemoteAddr().String())

	// Drain reads so close frames and pongs are processed. The feed is
	// push-only; any inbound payload is discarded.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// CatalogChanged implements ports.CatalogNotifier.
func (h *Hub) CatalogChanged(event string, stream *domain.Stream) {
	msg := CatalogEvent{
		Type:      event,
		Stream:    stream,
		Timestamp: time.Now(),
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Debugw("websocket write failed, dropping client", "error", err)
			h.drop(conn)
		}
	}
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.connections {
		conn.Close()
	}
	h.connections = make(map[*websocket.Conn]struct{})
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.connections[conn]
	delete(h.connections, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}
