package ws

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/presence"
)

const writeWait = 10 * time.Second

// conn is one live realtime connection and its outbound queue.
type conn struct {
	id   presence.ConnectionID
	ws   *websocket.Conn
	hub  *Hub
	send chan []byte
}

func newConn(hub *Hub, ws *websocket.Conn, id presence.ConnectionID) *conn {
	return &conn{
		id:   id,
		ws:   ws,
		hub:  hub,
		send: make(chan []byte, hub.cfg.SendBuffer),
	}
}

// readPump dispatches inbound events until the socket fails or closes.
func (c *conn) readPump() {
	defer func() {
		c.hub.remove(c)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(c.hub.cfg.MaxMessageSize)
	pongWait := c.hub.cfg.PingInterval * 2
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			c.logReadError(err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		c.hub.dispatch(c, msg)
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *conn) writePump() {
	ticker := time.NewTicker(c.hub.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *conn) logReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		c.hub.logger.Warn("Realtime message exceeded size limit",
			zap.String("socket", string(c.id)),
			zap.Int64("limit", c.hub.cfg.MaxMessageSize),
		)
	case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived):
		c.hub.logger.Debug("Realtime connection closed unexpectedly",
			zap.String("socket", string(c.id)),
			zap.Error(err),
		)
	}
}
