// Package websocket provides the live security-event feed for administrative
// monitoring clients.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	appaudit "github.com/quizforge/quizforge/internal/application/audit"
)

const defaultBroadcastBufferSize = 256

// severityRank orders severities for threshold filtering.
func severityRank(s appaudit.Severity) int {
	switch s {
	case appaudit.SeverityInfo:
		return 0
	case appaudit.SeverityMedium:
		return 1
	case appaudit.SeverityHigh:
		return 2
	case appaudit.SeverityCritical:
		return 3
	default:
		return 0
	}
}

// Feed fans security events out to connected admin clients. Each client
// subscribes with a minimum severity; events below it are filtered before
// they reach the client's send buffer.
type Feed struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan appaudit.Event

	mu     sync.RWMutex
	logger *slog.Logger

	done      chan struct{}
	running   bool
	runningMu sync.Mutex
}

// FeedOption configures the Feed.
type FeedOption func(*Feed)

// WithFeedLogger sets the logger.
func WithFeedLogger(logger *slog.Logger) FeedOption {
	return func(f *Feed) {
		f.logger = logger
	}
}

// NewFeed creates a Feed.
func NewFeed(opts ...FeedOption) *Feed {
	f := &Feed{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan appaudit.Event, defaultBroadcastBufferSize),
		logger:     slog.Default(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run starts the feed's event loop. Run as a goroutine.
func (f *Feed) Run(ctx context.Context) {
	f.runningMu.Lock()
	if f.running {
		f.runningMu.Unlock()
		return
	}
	f.running = true
	f.runningMu.Unlock()

	f.logger.InfoContext(ctx, "security feed started")

	for {
		select {
		case <-ctx.Done():
			f.shutdown()
			return
		case <-f.done:
			f.shutdown()
			return
		case client := <-f.register:
			f.registerClient(client)
		case client := <-f.unregister:
			f.unregisterClient(client)
		case event := <-f.broadcast:
			f.deliver(event)
		}
	}
}

// Stop signals the feed to stop.
func (f *Feed) Stop() {
	f.runningMu.Lock()
	defer f.runningMu.Unlock()
	if !f.running {
		return
	}
	f.running = false
	close(f.done)
}

// IsRunning reports whether the event loop is active.
func (f *Feed) IsRunning() bool {
	f.runningMu.Lock()
	defer f.runningMu.Unlock()
	return f.running
}

// ClientCount returns the number of connected clients.
func (f *Feed) ClientCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// Register attaches a client to the feed.
func (f *Feed) Register(client *Client) {
	f.register <- client
}

// Unregister detaches a client from the feed.
func (f *Feed) Unregister(client *Client) {
	f.unregister <- client
}

// Publish implements audit.Sink. A full broadcast buffer drops the event:
// the feed is a monitoring convenience, never a delivery guarantee.
func (f *Feed) Publish(_ context.Context, event appaudit.Event) error {
	select {
	case f.broadcast <- event:
	default:
		f.logger.Warn("security feed broadcast buffer full, event dropped",
			slog.String("event_type", string(event.Type)),
		)
	}
	return nil
}

func (f *Feed) registerClient(client *Client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[client] = true

	f.logger.Debug("feed client registered",
		slog.String("user_id", client.userID.String()),
		slog.Int("total_clients", len(f.clients)),
	)
}

func (f *Feed) unregisterClient(client *Client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[client]; !ok {
		return
	}
	delete(f.clients, client)
	client.Close()

	f.logger.Debug("feed client unregistered",
		slog.String("user_id", client.userID.String()),
		slog.Int("total_clients", len(f.clients)),
	)
}

func (f *Feed) deliver(event appaudit.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		f.logger.Error("failed to encode security event for feed", slog.Any("error", err))
		return
	}

	rank := severityRank(event.Severity)

	f.mu.RLock()
	defer f.mu.RUnlock()
	for client := range f.clients {
		if rank < severityRank(client.minSeverity) {
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Slow consumer; skip rather than stall the loop.
		}
	}
}

func (f *Feed) shutdown() {
	f.runningMu.Lock()
	f.running = false
	f.runningMu.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		client.Close()
	}
	f.clients = make(map[*Client]bool)

	f.logger.Info("security feed stopped")
}
