// internal/socket/hub.go
package socket

import (
	"sync"
	"time"

	"wfl-bus-finder-api-server/internal/logging"
	"wfl-bus-finder-api-server/internal/metrics"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 5 * time.Second

	// Events queued per client before it is considered too slow and dropped.
	sendBuffer = 16
)

// Conn is the subset of *websocket.Conn the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one registered socket. Events queue in send until Run starts
// the writer, so the caller can write a snapshot first.
type Client struct {
	ID   string
	conn Conn
	send chan []byte
	hub  *Hub
}

// Hub fans bus events out to every connected map client. Broadcast never
// writes to a socket itself; each client has its own writer goroutine.
type Hub struct {
	clients map[string]*Client
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds conn under id, replacing any client with the same id.
func (h *Hub) Register(id string, conn Conn) *Client {
	c := &Client{ID: id, conn: conn, send: make(chan []byte, sendBuffer), hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.clients[id]; ok {
		h.remove(old)
	}
	h.clients[id] = c
	metrics.WebSocketClients.Set(float64(len(h.clients)))
	logging.Debug().Str("client", id).Msg("WebSocket client registered")
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(c)
}

// remove must be called with mu held. It closes c.send, which stops the writer.
func (h *Hub) remove(c *Client) {
	if cur, ok := h.clients[c.ID]; ok && cur == c {
		delete(h.clients, c.ID)
		close(c.send)
		metrics.WebSocketClients.Set(float64(len(h.clients)))
		logging.Debug().Str("client", c.ID).Msg("WebSocket client unregistered")
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues v as JSON for every client without blocking. A client
// whose queue is full is dropped; delivery is best effort.
func (h *Hub) Broadcast(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			logging.Warn().Str("client", c.ID).Msg("Dropping slow WebSocket client")
			h.remove(c)
		}
	}
	return nil
}

// Run writes queued events until the client is removed or a write fails,
// then closes the connection. It blocks; start it with go.
func (c *Client) Run() {
	defer c.conn.Close()
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logging.Warn().Err(err).Str("client", c.ID).Msg("Dropping WebSocket client after failed write")
			c.hub.Unregister(c)
			return
		}
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
