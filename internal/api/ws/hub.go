package ws

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/presence"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/id"
)

// Config holds realtime transport settings
type Config struct {
	AllowedOrigin  string
	MaxMessageSize int64
	PingInterval   time.Duration
	SendBuffer     int
}

// DefaultConfig returns the transport defaults
func DefaultConfig() Config {
	return Config{
		AllowedOrigin:  "https://linkedin1-frontend.onrender.com",
		MaxMessageSize: 4096,
		PingInterval:   25 * time.Second,
		SendBuffer:     64,
	}
}

// Hub owns every live realtime connection. Inbound lifecycle events are fed
// to the presence Tracker; outbound events are routed to a user's current
// connection through the presence Registry.
type Hub struct {
	mu       sync.RWMutex
	conns    map[presence.ConnectionID]*conn // Protected by mu
	closed   bool                            // Protected by mu
	tracker  *presence.Tracker
	upgrader websocket.Upgrader
	cfg      Config
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewHub creates a hub bound to a presence tracker
func NewHub(tracker *presence.Tracker, cfg Config, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		conns:   make(map[presence.ConnectionID]*conn),
		tracker: tracker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigin),
		},
		cfg:    cfg,
		logger: logger,
	}
}

// WithMetrics adds metrics tracking to the hub
func (h *Hub) WithMetrics(metrics *monitoring.Metrics) *Hub {
	h.metrics = metrics
	return h
}

// HandleConnection upgrades the request and serves the connection until it
// disconnects.
func (h *Hub) HandleConnection(c *gin.Context) {
	wsConn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error response.
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cn := newConn(h, wsConn, presence.ConnectionID(id.NewConnID()))
	if !h.add(cn) {
		wsConn.Close()
		return
	}

	go cn.writePump()
	cn.readPump()
}

// Emit queues an event for a user's current connection. It reports false
// when the user has no registered connection or its queue is full.
func (h *Hub) Emit(userID string, event string, data any) bool {
	delivered := h.emit(presence.UserID(userID), event, data)
	if h.metrics != nil {
		h.metrics.RecordEmit(event, delivered)
	}
	return delivered
}

func (h *Hub) emit(user presence.UserID, event string, data any) bool {
	connID, ok := h.tracker.Registry().Lookup(user)
	if !ok {
		return false
	}

	msg, err := EncodeFrame(event, data)
	if err != nil {
		h.logger.Error("Failed to encode realtime event", zap.String("event", event), zap.Error(err))
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	cn, ok := h.conns[connID]
	if !ok {
		return false
	}
	select {
	case cn.send <- msg:
		return true
	default:
		h.logger.Warn("Realtime send queue full, dropping event",
			zap.String("user", string(user)),
			zap.String("event", event),
		)
		return false
	}
}

// Online reports whether a user currently has a registered connection
func (h *Hub) Online(userID string) bool {
	_, ok := h.tracker.Registry().Lookup(presence.UserID(userID))
	return ok
}

// Len returns the number of open connections
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close disconnects every connection and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	conns := make([]*conn, 0, len(h.conns))
	for _, cn := range h.conns {
		conns = append(conns, cn)
	}
	h.mu.Unlock()

	for _, cn := range conns {
		// readPump observes the error and runs the normal disconnect path.
		cn.ws.Close()
	}
}

func (h *Hub) add(cn *conn) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.conns[cn.id] = cn
	h.mu.Unlock()

	h.tracker.Open(cn.id)
	if h.metrics != nil {
		h.metrics.ConnectionOpened()
	}
	return true
}

func (h *Hub) remove(cn *conn) {
	h.mu.Lock()
	if _, ok := h.conns[cn.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.conns, cn.id)
	close(cn.send)
	h.mu.Unlock()

	h.tracker.Disconnect(cn.id)
	if h.metrics != nil {
		h.metrics.ConnectionClosed()
	}
}

func (h *Hub) dispatch(cn *conn, msg []byte) {
	frame, err := DecodeFrame(msg)
	if err != nil {
		h.logger.Debug("Ignoring malformed realtime frame", zap.String("socket", string(cn.id)), zap.Error(err))
		return
	}

	switch frame.Event {
	case EventRegister:
		if h.metrics != nil {
			h.metrics.RecordEvent(EventRegister)
		}
		h.tracker.Register(cn.id, presence.ParseUserID(frame.Data))
	default:
		h.logger.Debug("Ignoring unknown realtime event",
			zap.String("socket", string(cn.id)),
			zap.String("event", frame.Event),
		)
	}
}
