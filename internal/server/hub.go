package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"remi/internal/delivery"
	"remi/internal/logging"
)

// Hub tracks one WebSocket connection per owner and doubles as the delivery
// sink: a firing reaches the owner only while they are connected. An owner
// with no connection is a delivery failure, which the schedulers translate
// into their teardown rules.
type Hub struct {
	upgrader websocket.Upgrader
	logger   logging.Logger

	mu    sync.RWMutex
	conns map[string]*ownerConn
}

type ownerConn struct {
	ws *websocket.Conn
	mu sync.Mutex // serializes writes
}

// NewHub creates an empty hub.
func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logging.OrNop(logger),
		conns:  make(map[string]*ownerConn),
	}
}

// notification is the wire form of a delivered message.
type notification struct {
	Type    string            `json:"type"`
	Text    string            `json:"text"`
	Actions []delivery.Action `json:"actions,omitempty"`
}

// Deliver implements delivery.Sink.
func (h *Hub) Deliver(_ context.Context, ownerID string, msg delivery.Message) error {
	h.mu.RLock()
	conn, ok := h.conns[ownerID]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("owner %s is not connected", ownerID)
	}

	conn.mu.Lock()
	defer conn.mu.Unlock()
	if err := conn.ws.WriteJSON(notification{Type: "notification", Text: msg.Text, Actions: msg.Actions}); err != nil {
		return fmt.Errorf("write to %s: %w", ownerID, err)
	}
	return nil
}

// Connected reports whether the owner currently has a socket.
func (h *Hub) Connected(ownerID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[ownerID]
	return ok
}

// HandleWS upgrades the request and keeps the connection registered until it
// closes. A new connection for the same owner replaces the old one.
func (h *Hub) HandleWS(c *gin.Context) {
	ownerID := c.Param("id")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner id is required"})
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("server: websocket upgrade for %s failed: %v", ownerID, err)
		return
	}

	conn := &ownerConn{ws: ws}
	h.mu.Lock()
	if old, ok := h.conns[ownerID]; ok {
		old.ws.Close()
	}
	h.conns[ownerID] = conn
	h.mu.Unlock()

	h.logger.Info("server: owner %s connected", ownerID)

	// Read loop: we only care about the connection staying open.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	if h.conns[ownerID] == conn {
		delete(h.conns, ownerID)
	}
	h.mu.Unlock()
	ws.Close()
	h.logger.Info("server: owner %s disconnected", ownerID)
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for owner, conn := range h.conns {
		conn.ws.Close()
		delete(h.conns, owner)
	}
}
