package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	appaudit "github.com/quizforge/quizforge/internal/application/audit"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// Client configuration defaults.
const (
	defaultPingInterval   = 30 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultWriteWait      = 10 * time.Second
	defaultMaxMessageSize = 4096
	defaultSendBufferSize = 64
)

// ClientConfig holds timing and buffer settings for feed clients.
type ClientConfig struct {
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// DefaultClientConfig returns the default client configuration.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		PingInterval:   defaultPingInterval,
		PongWait:       defaultPongWait,
		WriteWait:      defaultWriteWait,
		MaxMessageSize: defaultMaxMessageSize,
	}
}

// Client is one admin connection to the security feed.
type Client struct {
	feed *Feed
	conn *websocket.Conn
	send chan []byte

	userID      uuid.UUID
	minSeverity appaudit.Severity

	config ClientConfig
	logger *slog.Logger

	closed   bool
	closedMu sync.Mutex
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientConfig sets the client configuration.
func WithClientConfig(config ClientConfig) ClientOption {
	return func(c *Client) {
		c.config = config
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a feed client for an upgraded connection. minSeverity
// filters what the client receives.
func NewClient(feed *Feed, conn *websocket.Conn, userID uuid.UUID, minSeverity appaudit.Severity, opts ...ClientOption) *Client {
	c := &Client{
		feed:        feed,
		conn:        conn,
		send:        make(chan []byte, defaultSendBufferSize),
		userID:      userID,
		minSeverity: minSeverity,
		config:      DefaultClientConfig(),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the read and write pumps. It returns immediately.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the outgoing channel once. The write pump then closes the
// connection.
func (c *Client) Close() {
	c.closedMu.Lock()
	defer c.closedMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump consumes incoming frames. The feed is one-way; reads exist to
// process control frames and to notice the peer going away.
func (c *Client) readPump() {
	defer c.feed.Unregister(c)

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("feed client read error",
					slog.String("user_id", c.userID.String()),
					slog.Any("error", err),
				)
			}
			return
		}
	}
}

// writePump drains the send channel and keeps the connection alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
