package push

import (
	"log/slog"
	"sync"
	"time"

	"github.com/arcadehub/arcade/internal/model"
)

// sendBuffer is the per-client event buffer; a slow consumer loses
// messages instead of blocking the dispatcher
const sendBuffer = 64

// Client is one registered connection's event stream
type Client struct {
	conn        model.ConnID
	send        chan model.Event
	connectedAt time.Time
}

// Events returns the client's receive channel. It is closed when the
// client is unregistered.
func (c *Client) Events() <-chan model.Event {
	return c.send
}

// Conn returns the connection id this client represents
func (c *Client) Conn() model.ConnID {
	return c.conn
}

// Hub fans outbound events to registered connections. The transport
// adapter (websocket, SSE, a test harness) registers a client per
// connection and drains its channel; the dispatcher only ever calls
// Send.
type Hub struct {
	mu      sync.RWMutex
	clients map[model.ConnID]*Client
	logger  *slog.Logger
}

// NewHub creates an empty Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[model.ConnID]*Client),
		logger:  logger,
	}
}

// Register adds a connection and returns its event stream. A second
// registration for the same connection replaces the first.
func (h *Hub) Register(conn model.ConnID) *Client {
	client := &Client{
		conn:        conn,
		send:        make(chan model.Event, sendBuffer),
		connectedAt: time.Now(),
	}

	h.mu.Lock()
	if old, ok := h.clients[conn]; ok {
		close(old.send)
	}
	h.clients[conn] = client
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("client registered",
		slog.String("conn", string(conn)),
		slog.Int("total_clients", count),
	)
	return client
}

// Unregister drops a connection and closes its stream
func (h *Hub) Unregister(conn model.ConnID) {
	h.mu.Lock()
	client, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
		close(client.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info("client unregistered",
			slog.String("conn", string(conn)),
			slog.Duration("connection_duration", time.Since(client.connectedAt)),
			slog.Int("total_clients", count),
		)
	}
}

// Send delivers one event to a connection, dropping it when the
// client's buffer is full. The read lock is held across the channel
// send: Register and Unregister close the channel under the write
// lock, so the close can never interleave with an in-flight send.
func (h *Hub) Send(conn model.ConnID, event model.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[conn]
	if !ok {
		return
	}

	select {
	case client.send <- event:
	default:
		h.logger.Warn("event dropped, client buffer full",
			slog.String("conn", string(conn)),
			slog.String("type", string(event.Type)),
		)
	}
}

// ClientCount returns the number of registered connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers one event to every registered connection
func (h *Hub) Broadcast(event model.Event) {
	h.mu.RLock()
	conns := make([]model.ConnID, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		h.Send(conn, event)
	}
}
