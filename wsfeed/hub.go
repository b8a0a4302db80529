package wsfeed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans encoded events out to connected clients. A client whose send
// queue is full is dropped.
type Hub struct {
	logger *slog.Logger

	events     chan []byte
	register   chan *Client
	unregister chan *Client

	mu      sync.Mutex
	clients map[*Client]struct{}

	sendBuf int
}

// HubConfig sizes the hub's queues. Zero picks a default.
type HubConfig struct {
	SendBuf      int // per client
	BroadcastBuf int
}

const (
	defaultSendBuf      = 32
	defaultBroadcastBuf = 128
)

func NewHub(logger *slog.Logger, cfg HubConfig) *Hub {
	if cfg.SendBuf <= 0 {
		cfg.SendBuf = defaultSendBuf
	}
	if cfg.BroadcastBuf <= 0 {
		cfg.BroadcastBuf = defaultBroadcastBuf
	}
	return &Hub{
		logger:     logger,
		events:     make(chan []byte, cfg.BroadcastBuf),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		clients:    make(map[*Client]struct{}),
		sendBuf:    cfg.SendBuf,
	}
}

// Run serves register, unregister and publish requests until ctx is done,
// then drops every client.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Debug("feed hub running")
	for {
		select {
		case <-ctx.Done():
			h.dropAll()
			h.logger.Debug("feed hub stopped")
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("feed client joined", "addr", c.addr, "clients", n)

		case c := <-h.unregister:
			h.drop(c, "closed")

		case msg := <-h.events:
			for _, c := range h.fanOut(msg) {
				h.drop(c, "send queue full")
			}
		}
	}
}

// fanOut queues msg on every client and returns those that could not take it.
func (h *Hub) fanOut(msg []byte) (full []*Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			full = append(full, c)
		}
	}
	return full
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) dropAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.close()
		delete(h.clients, c)
	}
}

func (h *Hub) drop(c *Client, reason string) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	c.close()
	h.logger.Info("feed client left", "addr", c.addr, "reason", reason, "clients", n)
}

// Publish queues an encoded event for every client. It does not block; the
// event is dropped when the hub is behind.
func (h *Hub) Publish(msg []byte) {
	select {
	case h.events <- msg:
	default:
		h.logger.Warn("feed hub behind, event dropped", "bytes", len(msg))
	}
}

// FrameHandler receives decoded inbound pointer frames.
type FrameHandler func(ctx context.Context, f Frame) error

// Client is one websocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	once sync.Once

	addr   string
	logger *slog.Logger
	frames FrameHandler
}

func NewClient(hub *Hub, conn *websocket.Conn, addr string, logger *slog.Logger, frames FrameHandler) *Client {
	n := defaultSendBuf
	if hub != nil {
		n = hub.sendBuf
	}
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, n),
		addr:   addr,
		logger: logger,
		frames: frames,
	}
}

// close shuts the connection and the send queue; writeLoop sees the closed
// queue and sends a close frame. Safe to call more than once.
func (c *Client) close() {
	c.once.Do(func() {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		close(c.send)
	})
}

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 20 * time.Second

	maxFrameBytes = 16 << 10
)

func (c *Client) writeLoop(ctx context.Context) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.logDone("write", err)
				return
			}

		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logDone("write", err)
				return
			}
		}
	}
}

// readLoop decodes inbound pointer frames and hands them to the frame
// handler. Undecodable frames are logged and skipped. On a read error it
// unregisters the client.
func (c *Client) readLoop(ctx context.Context) {
	c.conn.SetReadLimit(maxFrameBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if c.hub != nil {
		defer func() { c.hub.unregister <- c }()
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.logDone("read", err)
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		f, err := DecodeFrame(data)
		if err != nil {
			c.logger.Warn("feed frame rejected", "addr", c.addr, "error", err)
			continue
		}
		if c.frames == nil {
			continue
		}
		if err := c.frames(ctx, f); err != nil {
			c.logger.Info("feed client stopped by handler", "addr", c.addr, "error", err)
			return
		}
	}
}

func (c *Client) logDone(side string, err error) {
	var ce *websocket.CloseError
	switch {
	case errors.Is(err, websocket.ErrCloseSent):
	case errors.As(err, &ce):
		c.logger.Debug("feed client closed", "addr", c.addr, "side", side, "code", ce.Code, "text", ce.Text)
	default:
		c.logger.Debug("feed client lost", "addr", c.addr, "side", side, "error", err)
	}
}
