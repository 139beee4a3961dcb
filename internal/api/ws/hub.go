package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
	maxMessage = 4096
)

// Hub tracks renderer connections and fans events out to them
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	closed   bool
	upgrader websocket.Upgrader
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHub creates a hub accepting connections from origins ("*" allows any)
func NewHub(origins []string, logger *logging.Logger) *Hub {
	h := &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger.For("ws"),
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(origins)}
	return h
}

// WithMetrics records connection and message counts
func (h *Hub) WithMetrics(m *monitoring.Metrics) *Hub {
	h.metrics = m
	return h
}

func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}

// Notify broadcasts e to every client. Clients whose buffer is full miss
// the event rather than stall the caller.
func (h *Hub) Notify(e types.Event) {
	data, err := sonic.ConfigStd.Marshal(e)
	if err != nil {
		h.logger.Error("Failed to encode event", zap.String("type", string(e.Type)), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.enqueue(data) {
			h.record("out", string(e.Type))
		} else {
			h.logger.Warn("Dropped event for slow client", zap.String("type", string(e.Type)))
		}
	}
}

// Len reports how many clients are connected
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run emits a clock event every tick until ctx is done
func (h *Hub) Run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if h.Len() > 0 {
				h.Notify(types.NewEvent(types.EventClockTick, gin.H{"time": now.UTC()}))
			}
		}
	}
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// HandleConnection upgrades the request and serves the client until it
// disconnects
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cl := newClient(conn)
	if !h.register(cl) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}
	defer h.unregister(cl)

	go cl.writePump()
	h.reply(cl, gin.H{"type": "system", "message": "Connected to WebDesk shell"})
	h.readPump(cl)
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	h.logger.Debug("Client connected", zap.Int("clients", len(h.clients)))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.removeLocked(c)
	}
}

func (h *Hub) removeLocked(c *client) {
	delete(h.clients, c)
	c.close()
	if h.metrics != nil {
		h.metrics.DecWSConnections()
	}
	h.logger.Debug("Client disconnected", zap.Int("clients", len(h.clients)))
}

func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(maxMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		var msg struct {
			Type string `json:"type"`
		}
		if err := sonic.ConfigStd.Unmarshal(data, &msg); err != nil {
			h.reply(c, gin.H{"type": "error", "message": "invalid message"})
			continue
		}
		h.record("in", msg.Type)

		switch msg.Type {
		case "ping":
			h.reply(c, gin.H{"type": "pong", "timestamp": time.Now().Unix()})
		default:
			h.reply(c, gin.H{"type": "error", "message": "unknown message type"})
		}
	}
}

func (h *Hub) reply(c *client, msg gin.H) {
	data, err := sonic.ConfigStd.Marshal(msg)
	if err != nil {
		return
	}
	if c.enqueue(data) {
		if t, ok := msg["type"].(string); ok {
			h.record("out", t)
		}
	}
}

func (h *Hub) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
