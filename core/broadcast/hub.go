// Package broadcast pushes state snapshots to websocket subscribers, such
// as an operating room dashboard.
package broadcast

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/orpilot/orvoice-core/core/state"
)

// Per-client buffer. A client that falls this far behind is disconnected
// instead of backpressuring the pipeline.
const sendBuffer = 8

// Hub fans snapshots out to connected websocket clients. Wire Publish to a
// state store observer; each new client immediately receives the latest
// snapshot so dashboards render without waiting for a change.
type Hub struct {
	mu       sync.Mutex
	clients  map[string]*client
	latest   *state.Snapshot
	closed   bool
	upgrader websocket.Upgrader
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan state.Snapshot
}

func NewHub() *Hub {
	return &Hub{
		clients: map[string]*client{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish queues a snapshot for every connected client. Clients whose send
// buffer is full are dropped.
func (h *Hub) Publish(snapshot state.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	h.latest = &snapshot
	for id, c := range h.clients {
		select {
		case c.send <- snapshot:
		default:
			logger.Warn("Dropping slow websocket client", "client", id)
			delete(h.clients, id)
			close(c.send)
		}
	}
}

// Handler upgrades requests to websocket connections and streams snapshots
// until the client disconnects.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("Failed to upgrade websocket connection", "error", err)
			return
		}

		c := &client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan state.Snapshot, sendBuffer),
		}

		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			conn.Close()
			return
		}
		if h.latest != nil {
			c.send <- *h.latest
		}
		h.clients[c.id] = c
		h.mu.Unlock()

		go c.readUntilClosed(h)
		go c.writeSnapshots(h)
	})
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects future connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// readUntilClosed drains incoming messages so pings are answered and a
// client close is noticed promptly.
func (c *client) readUntilClosed(h *Hub) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (c *client) writeSnapshots(h *Hub) {
	defer c.conn.Close()
	for snapshot := range c.send {
		if err := c.conn.WriteJSON(snapshot); err != nil {
			logger.Warn("Failed to write to websocket client", "client", c.id, "error", err)
			h.remove(c)
			return
		}
	}
}
