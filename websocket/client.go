package websocket

import (
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBufferSize = 256
)

// Client is one socket. rooms is guarded by the hub's mutex.
type Client struct {
	ID     string
	UserID uint

	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	rooms  map[string]struct{}
	logger *slog.Logger
}

func newClient(id string, userID uint, hub *Hub, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		rooms:  make(map[string]struct{}),
		logger: logger.With("socket_id", id, "user_id", userID),
	}
}

func (c *Client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		c.logger.Warn("send buffer full, dropping frame")
		return false
	}
}

// ReadPump reads frames until the connection fails and hands each decoded
// frame to handle. It returns when the socket is done.
func (c *Client) ReadPump(handle func(*Client, Inbound)) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic in read pump", "panic", r)
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Info("socket read failed", "error", err)
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Event == "" {
			if data, err := encode(EventError, ErrorData{Code: CodeBadRequest, Message: "malformed frame"}); err == nil {
				c.hub.Send(c, data)
			}
			continue
		}
		handle(c, msg)
	}
}

// WritePump drains the send channel and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Info("socket write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
