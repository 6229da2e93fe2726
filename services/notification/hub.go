package notification

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pitchbook/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var ErrNoConnection = errors.New("user has no active connection")

// Hub fans notification payloads out to the WebSocket connections of each
// user. One user may hold several connections (multiple tabs/devices).
// Constructed once in main and injected; Dispose tears every client down
// (e.g., on shutdown or logout-all).
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]bool // userID -> connections
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]bool)}
}

// Client wraps a single WebSocket connection. The send channel is never
// closed; teardown is signalled through done so a concurrent SendToUser
// holding a stale snapshot can never write to a closed channel.
type Client struct {
	hub    *Hub
	userID string
	conn   *websocket.Conn
	send   chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// close is idempotent and safe from any goroutine.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Register attaches a connection to the hub and starts its pumps.
func (h *Hub) Register(userID string, conn *websocket.Conn) *Client {
	c := &Client{
		hub:    h,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][c] = true
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()
	return c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if conns, ok := h.clients[c.userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clients, c.userID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// Disconnect drops every connection held by the user (logout).
func (h *Hub) Disconnect(userID string) {
	h.mu.Lock()
	conns := h.clients[userID]
	delete(h.clients, userID)
	h.mu.Unlock()

	for c := range conns {
		c.close()
	}
}

// SendToUser marshals the payload and queues it on every connection the
// user holds. Slow consumers are dropped rather than blocking the hub.
func (h *Hub) SendToUser(userID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	if len(conns) == 0 {
		return ErrNoConnection
	}
	for _, c := range conns {
		select {
		case c.send <- data:
		case <-c.done:
		default:
			utils.GetLogger().Warn("hub: dropping slow websocket client",
				zap.String("userID", userID))
			h.unregister(c)
		}
	}
	return nil
}

// ConnectedUsers returns the number of users with at least one connection.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dispose closes every connection and empties the hub.
func (h *Hub) Dispose() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]map[*Client]bool)
	h.mu.Unlock()

	for _, conns := range clients {
		for c := range conns {
			c.close()
		}
	}
}

// readPump drains inbound frames so control messages are processed; the
// channel is push-only, client payloads are discarded.
func (c *Client) readPump() {
	defer c.hub.unregister(c)
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.unregister(c)
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.unregister(c)
				return
			}
		}
	}
}
